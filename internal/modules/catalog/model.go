package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Length selects how much copy the generator produces.
type Length string

const (
	LengthShort    Length = "short"
	LengthStandard Length = "standard"
	LengthDetailed Length = "detailed"

	DefaultLength = LengthDetailed
)

// Lengths lists the accepted values in display order.
var Lengths = []Length{LengthShort, LengthStandard, LengthDetailed}

// ParseLength maps free text onto a Length; anything unrecognised is DefaultLength.
func ParseLength(s string) Length {
	switch l := Length(strings.ToLower(strings.TrimSpace(s))); l {
	case LengthShort, LengthStandard, LengthDetailed:
		return l
	default:
		return DefaultLength
	}
}

// Brief is the set of merchandising attributes sent to the generator and used as
// the body of create/update requests. Nil optional fields are absent, not empty.
type Brief struct {
	Name            string   `json:"name"`
	Category        *string  `json:"category,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	Tagline         *string  `json:"tagline,omitempty"`
	Features        []string `json:"features"`
	SEOKeywords     []string `json:"seo_keywords"`
	Tone            *string  `json:"tone,omitempty"`
	Audience        *string  `json:"audience,omitempty"`
	Language        *string  `json:"language,omitempty"`
	AdditionalNotes *string  `json:"additional_notes,omitempty"`
	Length          Length   `json:"length"`
}

// Product is a stored product description record as returned by the remote API.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        *string   `json:"category"`
	Brand           *string   `json:"brand"`
	Tagline         *string   `json:"tagline"`
	Features        []string  `json:"features"`
	SEOKeywords     []string  `json:"seo_keywords"`
	Tone            *string   `json:"tone"`
	Audience        *string   `json:"audience"`
	Language        *string   `json:"language"`
	AdditionalNotes *string   `json:"additional_notes"`
	Length          Length    `json:"length"`
	Description     string    `json:"description"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

// Normalize resolves wire defaults in one place: a missing or unknown length
// becomes DefaultLength and null lists become empty ones. Every record decoded
// from the API passes through here; views never re-default.
func (p *Product) Normalize() {
	p.Length = ParseLength(string(p.Length))
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.SEOKeywords == nil {
		p.SEOKeywords = []string{}
	}
}

// Clone returns a deep copy that shares no pointers or slices with p.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Category = clonePtr(p.Category)
	cp.Brand = clonePtr(p.Brand)
	cp.Tagline = clonePtr(p.Tagline)
	cp.Tone = clonePtr(p.Tone)
	cp.Audience = clonePtr(p.Audience)
	cp.Language = clonePtr(p.Language)
	cp.AdditionalNotes = clonePtr(p.AdditionalNotes)
	if p.Features != nil {
		cp.Features = append([]string{}, p.Features...)
	}
	if p.SEOKeywords != nil {
		cp.SEOKeywords = append([]string{}, p.SEOKeywords...)
	}
	return &cp
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Brief projects the record back onto a generation brief.
func (p *Product) Brief() Brief {
	return Brief{
		Name:            p.Name,
		Category:        p.Category,
		Brand:           p.Brand,
		Tagline:         p.Tagline,
		Features:        append([]string{}, p.Features...),
		SEOKeywords:     append([]string{}, p.SEOKeywords...),
		Tone:            p.Tone,
		Audience:        p.Audience,
		Language:        p.Language,
		AdditionalNotes: p.AdditionalNotes,
		Length:          p.Length,
	}
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// naiveLayout is an ISO 8601 timestamp without a zone, as emitted by servers that
// serialise UTC datetimes without an offset.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a server assigned time that accepts both RFC 3339 and zone-less
// ISO 8601 values. Zone-less values are read as UTC.
type Timestamp struct{ time.Time }

func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("timestamp: cannot parse %q", s)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
