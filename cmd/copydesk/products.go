package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/georgemunganga/copydesk/internal/modules/brief"
	"github.com/georgemunganga/copydesk/internal/modules/catalog"
	"github.com/georgemunganga/copydesk/internal/modules/console"
	"github.com/georgemunganga/copydesk/internal/modules/reconcile"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		products, err := svc.ListProducts(cmd.Context())
		if err != nil {
			return reportError(err)
		}
		// Reuse the console ordering rules.
		c := reconcile.NewCollection()
		c.ReplaceAll(products)
		printList(cmd.OutOrStdout(), c.Snapshot().Products)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one product and its description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		p, err := svc.GetProduct(cmd.Context(), args[0])
		if err != nil {
			return reportError(err)
		}
		return printProduct(cmd.OutOrStdout(), p)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if err := svc.DeleteProduct(cmd.Context(), args[0]); err != nil {
			return reportError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the product API is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		h, err := svc.Health(cmd.Context())
		if err != nil {
			return reportError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Status, h.Message)
		return nil
	},
}

var (
	genForm brief.Form
	genSave bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a description from a brief",
	Long: `Sends a brief to the generation endpoint and prints the copy. With --save the
product is created and the server generates and stores the description.

Example:
  copydesk generate --name "AuroraGlow Smart Lamp" --features $'Adaptive brightness\nVoice control' \
    --keywords "smart lamp, ambient LED" --length standard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		ctx := context.WithoutCancel(cmd.Context())
		b := brief.Encode(genForm)
		if genSave {
			p, err := svc.CreateProduct(ctx, b, "", true)
			if err != nil {
				return reportError(err)
			}
			return printProduct(cmd.OutOrStdout(), p)
		}
		desc, err := svc.GenerateDescription(ctx, b)
		if err != nil {
			return reportError(err)
		}
		return printMarkdown(cmd.OutOrStdout(), desc)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genForm.Name, "name", "", "product name (required)")
	f.StringVar(&genForm.Category, "category", "", "category")
	f.StringVar(&genForm.Brand, "brand", "", "brand")
	f.StringVar(&genForm.Tagline, "tagline", "", "tagline")
	f.StringVar(&genForm.Features, "features", "", "features, one per line")
	f.StringVar(&genForm.Keywords, "keywords", "", "SEO keywords, comma or newline separated")
	f.StringVar(&genForm.Tone, "tone", brief.DefaultTone, "tone of voice")
	f.StringVar(&genForm.Audience, "audience", "", "target audience")
	f.StringVar(&genForm.Language, "language", brief.DefaultLanguage, "output language")
	f.StringVar(&genForm.AdditionalNotes, "notes", "", "additional creative direction")
	f.StringVar(&genForm.Length, "length", string(catalog.DefaultLength), "short, standard or detailed")
	f.BoolVar(&genSave, "save", false, "create the product instead of only previewing")
}

// reportError logs the failure and returns the console's banner text as the
// command error.
func reportError(err error) error {
	log.Debug("command failed", "error", err)
	return errors.New(console.MessageFor(err))
}

func printList(w io.Writer, products []*catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No products yet."))
		return
	}
	for _, p := range products {
		line := titleStyle.Render(p.Name) + " " + badgeStyle.Render("["+string(p.Length)+"]")
		if c := catalog.Deref(p.Category); c != "" {
			line += " " + c
		}
		fmt.Fprintln(w, line)
		fmt.Fprintln(w, "  "+mutedStyle.Render(p.ID+"  updated "+p.UpdatedAt.UTC().Format("2006-01-02 15:04")))
	}
}

func printProduct(w io.Writer, p *catalog.Product) error {
	fmt.Fprintln(w, titleStyle.Render(p.Name)+" "+mutedStyle.Render(p.ID))
	facts := []struct{ label, value string }{
		{"Brand", catalog.Deref(p.Brand)},
		{"Category", catalog.Deref(p.Category)},
		{"Tagline", catalog.Deref(p.Tagline)},
		{"Audience", catalog.Deref(p.Audience)},
		{"Tone", catalog.Deref(p.Tone)},
		{"Language", catalog.Deref(p.Language)},
		{"Length", string(p.Length)},
		{"Features", strings.Join(p.Features, "; ")},
		{"Keywords", strings.Join(p.SEOKeywords, ", ")},
	}
	for _, f := range facts {
		if f.value != "" {
			fmt.Fprintf(w, "%s %s\n", mutedStyle.Render(f.label+":"), f.value)
		}
	}
	fmt.Fprintln(w)
	return printMarkdown(w, p.Description)
}

func printMarkdown(w io.Writer, src string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		_, err = fmt.Fprintln(w, src)
		return err
	}
	out, err := r.Render(src)
	if err != nil {
		_, err = fmt.Fprintln(w, src)
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
