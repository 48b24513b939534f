// Package brief turns raw console form input into normalized generation briefs
// and back.
package brief

import (
	"strings"

	"github.com/georgemunganga/copydesk/internal/modules/catalog"
)

const (
	DefaultTone     = "balanced"
	DefaultLanguage = "English"
)

// Form is the product brief exactly as typed into the console.
type Form struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Brand           string `json:"brand"`
	Tagline         string `json:"tagline"`
	Features        string `json:"features"`     // one per line
	Keywords        string `json:"seo_keywords"` // comma or newline separated
	Tone            string `json:"tone"`
	Audience        string `json:"audience"`
	Language        string `json:"language"`
	AdditionalNotes string `json:"additional_notes"`
	Length          string `json:"length"`
}

// DefaultForm is the blank form shown when nothing is being edited.
func DefaultForm() Form {
	return Form{
		Tone:     DefaultTone,
		Language: DefaultLanguage,
		Length:   string(catalog.DefaultLength),
	}
}

// ParseLines splits text on newlines, trimming and dropping blank lines.
func ParseLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseKeywords splits text on commas and newlines, trimming and dropping blanks.
func ParseKeywords(text string) []string {
	out := []string{}
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })
	for _, tok := range fields {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Optional returns nil for blank input, otherwise the trimmed value.
func Optional(text string) *string {
	v := strings.TrimSpace(text)
	if v == "" {
		return nil
	}
	return &v
}

func withDefault(text, def string) *string {
	if v := Optional(text); v != nil {
		return v
	}
	return &def
}

// Encode builds the request payload for f. Tone and language fall back to their
// defaults only when blank.
func Encode(f Form) catalog.Brief {
	return catalog.Brief{
		Name:            strings.TrimSpace(f.Name),
		Category:        Optional(f.Category),
		Brand:           Optional(f.Brand),
		Tagline:         Optional(f.Tagline),
		Features:        ParseLines(f.Features),
		SEOKeywords:     ParseKeywords(f.Keywords),
		Tone:            withDefault(f.Tone, DefaultTone),
		Audience:        Optional(f.Audience),
		Language:        withDefault(f.Language, DefaultLanguage),
		AdditionalNotes: Optional(f.AdditionalNotes),
		Length:          catalog.ParseLength(f.Length),
	}
}

// FormFromProduct fills a form from a stored record for editing. Null fields
// become blank, except tone and language which take their defaults.
func FormFromProduct(p *catalog.Product) Form {
	f := Form{
		Name:            p.Name,
		Category:        catalog.Deref(p.Category),
		Brand:           catalog.Deref(p.Brand),
		Tagline:         catalog.Deref(p.Tagline),
		Features:        strings.Join(p.Features, "\n"),
		Keywords:        strings.Join(p.SEOKeywords, ", "),
		Tone:            catalog.Deref(p.Tone),
		Audience:        catalog.Deref(p.Audience),
		Language:        catalog.Deref(p.Language),
		AdditionalNotes: catalog.Deref(p.AdditionalNotes),
		Length:          string(catalog.ParseLength(string(p.Length))),
	}
	if strings.TrimSpace(f.Tone) == "" {
		f.Tone = DefaultTone
	}
	if strings.TrimSpace(f.Language) == "" {
		f.Language = DefaultLanguage
	}
	return f
}
