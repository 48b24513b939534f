package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/georgemunganga/copydesk/internal/logger"
	"github.com/georgemunganga/copydesk/internal/modules/brief"
	"github.com/georgemunganga/copydesk/internal/modules/catalog"
	"github.com/georgemunganga/copydesk/internal/modules/notify"
	"github.com/georgemunganga/copydesk/internal/modules/reconcile"
)

// Console is the command layer behind the browser UI. Every command issues at
// most one request, merges the result into the collection and reports the
// outcome through the notifier. Failures never escape a command; they become
// the error banner and are also returned for logging.
type Console struct {
	service    catalog.Service
	collection *reconcile.Collection
	notices    *notify.Notifier
	log        *logger.Logger
	md         *markdown
	apiBase    string

	viewMu sync.RWMutex
	view   *pageView
}

type Options struct {
	// NoticeTTL is how long success notices stay up. Zero uses notify.DefaultTTL.
	NoticeTTL time.Duration
	// APIBase is shown in the page header.
	APIBase string
}

func New(service catalog.Service, log *logger.Logger, opts Options) *Console {
	c := &Console{
		service:    service,
		collection: reconcile.NewCollection(),
		notices:    notify.New(opts.NoticeTTL),
		log:        log.With("component", "console"),
		md:         newMarkdown(),
		apiBase:    opts.APIBase,
	}
	c.collection.Subscribe(c.rederive)
	c.rederive(c.collection.Snapshot())
	c.notices.OnChange(func() {
		if n, ok := c.notices.Current(); ok {
			c.log.Debug("notice shown", "kind", n.Kind, "id", n.ID)
			return
		}
		c.log.Debug("notice cleared")
	})
	return c
}

// Close stops pending notice timers.
func (c *Console) Close() { c.notices.Stop() }

func (c *Console) Snapshot() reconcile.Snapshot { return c.collection.Snapshot() }

func (c *Console) Notice() (notify.Notice, bool) { return c.notices.Current() }

func (c *Console) DismissNotice() { c.notices.Dismiss() }

// Refresh reloads the whole collection from the API.
func (c *Console) Refresh(ctx context.Context) error {
	products, err := c.service.ListProducts(ctx)
	if err != nil {
		return c.fail("refresh", err)
	}
	c.collection.ReplaceAll(products)
	c.log.Info("collection refreshed", "count", len(products))
	return nil
}

// Create saves a new product. With autoGenerate the server writes the copy and
// the draft description is not sent.
func (c *Console) Create(ctx context.Context, form brief.Form, description string, autoGenerate bool) error {
	c.collection.SetDraft(form, description)
	p, err := c.service.CreateProduct(ctx, brief.Encode(form), description, autoGenerate)
	if err != nil {
		return c.fail("create", err)
	}
	c.collection.Upsert(p)
	c.collection.ResetDraft()
	c.notices.Success(fmt.Sprintf("Created %q.", p.Name))
	c.log.Info("product created", "id", p.ID, "auto_generate", autoGenerate)
	return nil
}

// Update saves the draft over product id. With regenerate the server rewrites
// the copy from the brief.
func (c *Console) Update(ctx context.Context, id string, form brief.Form, description string, regenerate bool) error {
	c.collection.SetDraft(form, description)
	p, err := c.service.UpdateProduct(ctx, id, brief.Encode(form), description, regenerate)
	if err != nil {
		return c.fail("update", err)
	}
	c.collection.Upsert(p)
	if c.collection.Snapshot().EditingID == p.ID {
		c.collection.ResetDraft()
	}
	c.notices.Success(fmt.Sprintf("Saved %q.", p.Name))
	c.log.Info("product updated", "id", p.ID, "regenerate", regenerate)
	return nil
}

// Delete removes product id remotely and then locally.
func (c *Console) Delete(ctx context.Context, id string) error {
	if err := c.service.DeleteProduct(ctx, id); err != nil {
		return c.fail("delete", err)
	}
	c.collection.Remove(id)
	c.notices.Success("Product deleted.")
	c.log.Info("product deleted", "id", id)
	return nil
}

// Generate asks the API for copy from the draft brief and stores it as the draft
// description without saving anything.
func (c *Console) Generate(ctx context.Context, form brief.Form, currentDescription string) error {
	c.collection.SetDraft(form, currentDescription)
	desc, err := c.service.GenerateDescription(ctx, brief.Encode(form))
	if err != nil {
		return c.fail("generate", err)
	}
	c.collection.SetDraft(form, desc)
	c.notices.Success("Description generated. Review it before saving.")
	return nil
}

// Edit starts editing a record already in the collection.
func (c *Console) Edit(id string) error {
	p := c.collection.Snapshot().Find(id)
	if p == nil {
		return c.fail("edit", &catalog.ValidationError{Field: "id", Message: "that product is no longer listed"})
	}
	c.collection.BeginEdit(p)
	return nil
}

func (c *Console) Select(id string) error {
	if !c.collection.Select(id) {
		return c.fail("select", &catalog.ValidationError{Field: "id", Message: "that product is no longer listed"})
	}
	return nil
}

func (c *Console) ResetDraft() { c.collection.ResetDraft() }

func (c *Console) fail(command string, err error) error {
	msg := MessageFor(err)
	c.notices.Error(msg)
	c.log.Warn("command failed", "command", command, "error", err)
	return err
}

// rederive rebuilds the page view from a snapshot. Snapshots can arrive out of
// order when two commands finish together; older versions are dropped.
func (c *Console) rederive(s reconcile.Snapshot) {
	v := derive(s, c.md, c.apiBase)
	c.viewMu.Lock()
	defer c.viewMu.Unlock()
	if c.view != nil && c.view.Version > v.Version {
		return
	}
	c.view = v
}

func (c *Console) currentView() *pageView {
	c.viewMu.RLock()
	defer c.viewMu.RUnlock()
	return c.view
}
