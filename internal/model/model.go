// Package model defines the site data documents: the owner profile, the
// publication list and the news feed.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SiteProfile is the owner's identity card, loaded from data/site.json.
type SiteProfile struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Affiliation string   `json:"affiliation"`
	Location    string   `json:"location"`
	Email       string   `json:"email"`
	About       string   `json:"about"`
	Interests   []string `json:"interests"`
}

// FirstName returns the first whitespace-delimited token of the profile name.
func (p *SiteProfile) FirstName() string {
	if p == nil {
		return ""
	}
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// LinkKind identifies a publication link (pdf, code, arxiv, ...).
type LinkKind string

const (
	LinkPDF    LinkKind = "pdf"
	LinkCode   LinkKind = "code"
	LinkArxiv  LinkKind = "arxiv"
	LinkDOI    LinkKind = "doi"
	LinkSlides LinkKind = "slides"
	LinkPoster LinkKind = "poster"
	LinkVideo  LinkKind = "video"
	LinkDemo   LinkKind = "demo"
)

// KnownLinkKinds lists the recognized kinds in display order.
var KnownLinkKinds = []LinkKind{
	LinkPDF, LinkCode, LinkArxiv, LinkDOI, LinkSlides, LinkPoster, LinkVideo, LinkDemo,
}

var linkLabels = map[LinkKind]string{
	LinkPDF:    "📄 PDF",
	LinkCode:   "💻 Code",
	LinkArxiv:  "📚 arXiv",
	LinkDOI:    "🔗 DOI",
	LinkSlides: "📊 Slides",
	LinkPoster: "🖼️ Poster",
	LinkVideo:  "🎥 Video",
	LinkDemo:   "🚀 Demo",
}

// Label returns the display label for the kind, or the key itself when the
// kind is not recognized.
func (k LinkKind) Label() string {
	if label, ok := linkLabels[k]; ok {
		return label
	}
	return string(k)
}

// Publication is one entry of data/publications.json.
type Publication struct {
	Title    string              `json:"title"`
	Authors  []string            `json:"authors"`
	Venue    string              `json:"venue"`
	Year     int                 `json:"year"`
	Links    map[LinkKind]string `json:"links,omitempty"`
	Tags     []string            `json:"tags,omitempty"`
	Abstract string              `json:"abstract,omitempty"`
}

// HasTag reports whether tag is in the publication's tag set.
func (p Publication) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NewsItem is one entry of data/news.json.
type NewsItem struct {
	Date Date   `json:"date"`
	Text string `json:"text"`
}

// Date is a calendar date encoded as "YYYY-MM-DD" in JSON. RFC 3339
// timestamps, "YYYY-MM" and "YYYY" are accepted on input. A value that does
// not parse decodes to the zero Date, which sorts after every real date.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

var inputLayouts = []string{dateLayout, time.RFC3339, "2006-01", "2006"}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses any of the accepted input layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
}

// UnmarshalJSON implements json.Unmarshaler. It never fails: one bad date
// must not cost the whole news feed.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. The zero Date encodes as "".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateLayout))
}

// Short formats the date as "Jan 2006", or "" for the zero Date.
func (d Date) Short() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2006")
}
