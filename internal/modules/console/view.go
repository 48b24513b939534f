package console

import (
	"html/template"
	"time"

	"github.com/georgemunganga/copydesk/internal/modules/brief"
	"github.com/georgemunganga/copydesk/internal/modules/catalog"
	"github.com/georgemunganga/copydesk/internal/modules/reconcile"
)

const timeFormat = "02 Jan 2006 15:04"

type listItem struct {
	ID       string
	Name     string
	Category string
	Length   string
	Updated  string
	Selected bool
	Editing  bool
}

type detailView struct {
	ID              string
	Name            string
	Category        string
	Brand           string
	Tagline         string
	Tone            string
	Audience        string
	Language        string
	AdditionalNotes string
	Length          string
	Features        []string
	Keywords        []string
	DescriptionHTML template.HTML
	HasDescription  bool
	Created         string
	Updated         string
}

// pageView is everything the dashboard template needs except the notice, which
// changes on its own timer and is read at render time.
type pageView struct {
	Version          uint64
	APIBase          string
	Items            []listItem
	Detail           *detailView
	Draft            brief.Form
	DraftDescription string
	EditingID        string
	EditingName      string
	Lengths          []string
}

func derive(s reconcile.Snapshot, md *markdown, apiBase string) *pageView {
	v := &pageView{
		Version:          s.Version,
		APIBase:          apiBase,
		Items:            make([]listItem, 0, len(s.Products)),
		Draft:            s.Draft,
		DraftDescription: s.DraftDescription,
		EditingID:        s.EditingID,
	}
	for _, l := range catalog.Lengths {
		v.Lengths = append(v.Lengths, string(l))
	}
	for _, p := range s.Products {
		v.Items = append(v.Items, listItem{
			ID:       p.ID,
			Name:     p.Name,
			Category: catalog.Deref(p.Category),
			Length:   string(p.Length),
			Updated:  formatTime(p.UpdatedAt.Time),
			Selected: p.ID == s.SelectedID,
			Editing:  p.ID == s.EditingID,
		})
	}
	if p := s.Editing(); p != nil {
		v.EditingName = p.Name
	}
	if p := s.Selected(); p != nil {
		v.Detail = &detailView{
			ID:              p.ID,
			Name:            p.Name,
			Category:        catalog.Deref(p.Category),
			Brand:           catalog.Deref(p.Brand),
			Tagline:         catalog.Deref(p.Tagline),
			Tone:            catalog.Deref(p.Tone),
			Audience:        catalog.Deref(p.Audience),
			Language:        catalog.Deref(p.Language),
			AdditionalNotes: catalog.Deref(p.AdditionalNotes),
			Length:          string(p.Length),
			Features:        p.Features,
			Keywords:        p.SEOKeywords,
			DescriptionHTML: md.Render(p.Description),
			HasDescription:  p.Description != "",
			Created:         formatTime(p.CreatedAt.Time),
			Updated:         formatTime(p.UpdatedAt.Time),
		}
	}
	return v
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(timeFormat) + " UTC"
}
