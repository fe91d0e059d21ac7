// Package render maps loaded site data to view operations, one function per
// page region. Every function is pure: given absent data it returns no
// operations and the region keeps whatever markup it already had.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"github.com/ziadkadry99/scholarsite/internal/filter"
	"github.com/ziadkadry99/scholarsite/internal/model"
	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

// Region targets.
var (
	NavBrand           = viewport.ID("nav-brand-name")
	HeroName           = viewport.ID("hero-name")
	HeroTitle          = viewport.ID("hero-title")
	HeroAffiliation    = viewport.ID("hero-affiliation")
	HeroLocation       = viewport.ID("hero-location")
	ProfileImage       = viewport.ID("profile-image")
	PageTitle          = viewport.Sel("title")
	MetaDescription    = viewport.Sel(`meta[name="description"]`)
	ContactEmail       = viewport.ID("contact-email")
	ContactLocation    = viewport.ID("contact-location")
	ContactAffiliation = viewport.ID("contact-affiliation")
	AboutText          = viewport.ID("about-text")
	InterestsGrid      = viewport.ID("interests-grid")
	NewsList           = viewport.ID("news-list")
	SelectedList       = viewport.ID("selected-publications")
	PublicationsList   = viewport.ID("publications-list")
	YearFilter         = viewport.ID("year-filter")
	TagFilter          = viewport.ID("tag-filter")
)

const (
	// NewsLimit is how many news items the feed shows.
	NewsLimit = 5
	// SelectedLimit is how many publications the summary shows.
	SelectedLimit = 3

	MsgLoadError = "Error: Publications data could not be loaded."
	MsgEmpty     = "No publications available."
	MsgNoResults = "No publications found matching your criteria."
)

// Identity fills the navigation brand, hero card, document title, meta
// description and contact block.
func Identity(site *model.SiteProfile) []viewport.Op {
	if site == nil {
		return nil
	}
	return []viewport.Op{
		viewport.SetText(NavBrand, site.Name),
		viewport.SetText(HeroName, site.Name),
		viewport.SetText(HeroTitle, site.Title),
		viewport.SetText(HeroAffiliation, site.Affiliation),
		viewport.SetText(HeroLocation, site.Location),
		viewport.SetAttribute(ProfileImage, "alt", "Profile photo of "+site.Name),
		viewport.SetText(PageTitle, site.Name+" - "+site.Title),
		viewport.SetAttribute(MetaDescription, "content",
			fmt.Sprintf("%s - %s at %s. %s", site.Name, site.Title, site.Affiliation, site.About)),
		viewport.SetText(ContactEmail, site.Email),
		viewport.SetAttribute(ContactEmail, "href", "mailto:"+site.Email),
		viewport.SetText(ContactLocation, site.Location),
		viewport.SetText(ContactAffiliation, site.Affiliation),
	}
}

// About fills the about paragraph.
func About(site *model.SiteProfile) []viewport.Op {
	if site == nil {
		return nil
	}
	return []viewport.Op{viewport.SetText(AboutText, site.About)}
}

// Interests renders one tag per research interest.
func Interests(site *model.SiteProfile) ([]viewport.Op, error) {
	if site == nil || site.Interests == nil {
		return nil, nil
	}
	return fragment(InterestsGrid, "interests", site.Interests)
}

// LatestNews returns at most n items, newest first. Items with equal dates
// keep their input order.
func LatestNews(items []model.NewsItem, n int) []model.NewsItem {
	sorted := make([]model.NewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// News renders the latest news feed.
func News(items []model.NewsItem) ([]viewport.Op, error) {
	if items == nil {
		return nil, nil
	}
	return fragment(NewsList, "news", LatestNews(items, NewsLimit))
}

// SelectedPublications renders the newest publications on the home page.
func SelectedPublications(pubs []model.Publication, site *model.SiteProfile) ([]viewport.Op, error) {
	if pubs == nil {
		return nil, nil
	}
	return fragment(SelectedList, "cards", cards(filter.Top(pubs, SelectedLimit), site))
}

// PublicationList renders every publication, newest first, or the matching
// message when the list is absent or empty.
func PublicationList(pubs []model.Publication, site *model.SiteProfile) ([]viewport.Op, error) {
	switch {
	case pubs == nil:
		return fragment(PublicationsList, "message", MsgLoadError)
	case len(pubs) == 0:
		return fragment(PublicationsList, "message", MsgEmpty)
	}
	return fragment(PublicationsList, "cards", cards(filter.SortByYear(pubs), site))
}

// FilteredPublications renders a filter result in the given order.
func FilteredPublications(pubs []model.Publication, site *model.SiteProfile) ([]viewport.Op, error) {
	if len(pubs) == 0 {
		return fragment(PublicationsList, "message", MsgNoResults)
	}
	return fragment(PublicationsList, "cards", cards(pubs, site))
}

// FilterOptions fills the year and tag selects.
func FilterOptions(pubs []model.Publication) ([]viewport.Op, error) {
	if pubs == nil {
		return nil, nil
	}
	years := filter.Years(pubs)
	yearValues := make([]string, len(years))
	for i, y := range years {
		yearValues[i] = strconv.Itoa(y)
	}

	yearOps, err := fragment(YearFilter, "options", options{All: "All Years", Values: yearValues})
	if err != nil {
		return nil, err
	}
	tagOps, err := fragment(TagFilter, "options", options{All: "All Tags", Values: filter.Tags(pubs)})
	if err != nil {
		return nil, err
	}
	return append(yearOps, tagOps...), nil
}

// PublicationCard renders a single publication.
func PublicationCard(pub model.Publication, site *model.SiteProfile) (string, error) {
	return execute("card", card(pub, site))
}

// Toast renders a transient notification element.
func Toast(id, message string) (string, error) {
	return execute("toast", struct{ ID, Message string }{id, message})
}

type options struct {
	All    string
	Values []string
}

type cardView struct {
	Title    string
	Authors  []authorView
	Venue    string
	Year     int
	Links    []linkView
	Tags     []string
	Abstract string
}

type authorView struct {
	Name  string
	Owner bool
}

type linkView struct {
	URL   template.URL
	Label string
}

func cards(pubs []model.Publication, site *model.SiteProfile) []cardView {
	out := make([]cardView, len(pubs))
	for i, p := range pubs {
		out[i] = card(p, site)
	}
	return out
}

func card(p model.Publication, site *model.SiteProfile) cardView {
	owner := site.FirstName()
	authors := make([]authorView, len(p.Authors))
	for i, a := range p.Authors {
		authors[i] = authorView{Name: a, Owner: owner != "" && strings.Contains(a, owner)}
	}
	return cardView{
		Title:    p.Title,
		Authors:  authors,
		Venue:    p.Venue,
		Year:     p.Year,
		Links:    links(p.Links),
		Tags:     p.Tags,
		Abstract: p.Abstract,
	}
}

// links orders known kinds by the label table, then unknown kinds by key.
// Empty URLs are dropped.
func links(m map[model.LinkKind]string) []linkView {
	if len(m) == 0 {
		return nil
	}
	var out []linkView
	known := make(map[model.LinkKind]bool, len(model.KnownLinkKinds))
	for _, k := range model.KnownLinkKinds {
		known[k] = true
		if u := m[k]; u != "" {
			out = append(out, linkView{URL: template.URL(u), Label: k.Label()})
		}
	}
	var extra []string
	for k, u := range m {
		if !known[k] && u != "" {
			extra = append(extra, string(k))
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		kind := model.LinkKind(k)
		out = append(out, linkView{URL: template.URL(m[kind]), Label: kind.Label()})
	}
	return out
}

func fragment(t viewport.Target, name string, data any) ([]viewport.Op, error) {
	html, err := execute(name, data)
	if err != nil {
		return nil, err
	}
	return []viewport.Op{viewport.RenderFragment(t, html)}, nil
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
