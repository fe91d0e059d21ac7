package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/scholarsite/internal/model"
	"github.com/ziadkadry99/scholarsite/internal/viewport"
	"github.com/ziadkadry99/scholarsite/internal/viewport/headless"
)

const page = `<!DOCTYPE html>
<html><head><title>Loading</title><meta name="description" content=""></head>
<body>
  <span id="nav-brand-name"></span>
  <h1 id="hero-name"></h1><p id="hero-title"></p><p id="hero-affiliation"></p><p id="hero-location"></p>
  <img id="profile-image" src="me.jpg">
  <p id="about-text">placeholder about</p>
  <div id="interests-grid"></div>
  <div id="news-list">placeholder news</div>
  <div id="selected-publications"></div>
  <div id="publications-list"></div>
  <select id="year-filter"></select><select id="tag-filter"></select>
  <a id="contact-email"></a><span id="contact-location"></span><span id="contact-affiliation"></span>
</body></html>`

func newDoc(t *testing.T) *headless.Document {
	t.Helper()
	doc, err := headless.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func profile() *model.SiteProfile {
	return &model.SiteProfile{
		Name:        "Ada Lovelace",
		Title:       "Research Scientist",
		Affiliation: "Analytical Engines Lab",
		Location:    "London",
		Email:       "ada@example.org",
		About:       "I study <computation>.",
		Interests:   []string{"Machine Learning", "Graphs & Networks"},
	}
}

func apply(t *testing.T, doc *headless.Document, ops []viewport.Op, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	viewport.Apply(doc, ops)
}

func find(doc *headless.Document, sel string) *goquery.Selection {
	return doc.Selection().Find(sel)
}

func texts(s *goquery.Selection) []string {
	var out []string
	s.Each(func(_ int, el *goquery.Selection) {
		out = append(out, strings.TrimSpace(el.Text()))
	})
	return out
}

func TestIdentity(t *testing.T) {
	doc := newDoc(t)
	viewport.Apply(doc, Identity(profile()))
	viewport.Apply(doc, About(profile()))

	checks := map[string]string{
		"#nav-brand-name":      "Ada Lovelace",
		"#hero-name":           "Ada Lovelace",
		"#hero-title":          "Research Scientist",
		"#hero-affiliation":    "Analytical Engines Lab",
		"#hero-location":       "London",
		"title":                "Ada Lovelace - Research Scientist",
		"#contact-email":       "ada@example.org",
		"#contact-location":    "London",
		"#contact-affiliation": "Analytical Engines Lab",
		"#about-text":          "I study <computation>.",
	}
	for sel, want := range checks {
		if got := find(doc, sel).Text(); got != want {
			t.Errorf("%s text = %q, want %q", sel, got, want)
		}
	}
	if got := find(doc, "#profile-image").AttrOr("alt", ""); got != "Profile photo of Ada Lovelace" {
		t.Errorf("alt = %q", got)
	}
	if got := find(doc, "#contact-email").AttrOr("href", ""); got != "mailto:ada@example.org" {
		t.Errorf("href = %q", got)
	}
	wantDesc := "Ada Lovelace - Research Scientist at Analytical Engines Lab. I study <computation>."
	if got := find(doc, `meta[name="description"]`).AttrOr("content", ""); got != wantDesc {
		t.Errorf("description = %q, want %q", got, wantDesc)
	}
}

func TestAbsentDataLeavesRegionsUntouched(t *testing.T) {
	if ops := Identity(nil); ops != nil {
		t.Errorf("Identity(nil) = %v", ops)
	}
	if ops := About(nil); ops != nil {
		t.Errorf("About(nil) = %v", ops)
	}
	for name, render := range map[string]func() ([]viewport.Op, error){
		"interests": func() ([]viewport.Op, error) { return Interests(nil) },
		"news":      func() ([]viewport.Op, error) { return News(nil) },
		"selected":  func() ([]viewport.Op, error) { return SelectedPublications(nil, profile()) },
		"options":   func() ([]viewport.Op, error) { return FilterOptions(nil) },
	} {
		ops, err := render()
		if err != nil || ops != nil {
			t.Errorf("%s with absent data = %v, %v", name, ops, err)
		}
	}

	doc := newDoc(t)
	ops, err := News(nil)
	apply(t, doc, ops, err)
	if got := find(doc, "#news-list").Text(); got != "placeholder news" {
		t.Errorf("news region changed: %q", got)
	}
}

func TestInterestsEscaped(t *testing.T) {
	doc := newDoc(t)
	ops, err := Interests(profile())
	apply(t, doc, ops, err)
	got := texts(find(doc, "#interests-grid .interest-tag"))
	if diff := cmp.Diff([]string{"Machine Learning", "Graphs & Networks"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNewsShowsLatestFive(t *testing.T) {
	items := []model.NewsItem{
		{Date: model.NewDate(2023, 1, 10), Text: "jan"},
		{Date: model.NewDate(2023, 6, 1), Text: "jun"},
		{Date: model.NewDate(2022, 12, 24), Text: "dec"},
		{Date: model.NewDate(2023, 3, 5), Text: "mar"},
		{Date: model.NewDate(2023, 9, 30), Text: "sep"},
		{Date: model.NewDate(2023, 4, 15), Text: "apr"},
	}
	doc := newDoc(t)
	ops, err := News(items)
	apply(t, doc, ops, err)

	got := texts(find(doc, "#news-list .news-text"))
	if diff := cmp.Diff([]string{"sep", "jun", "apr", "mar", "jan"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := strings.TrimSpace(find(doc, "#news-list .news-date").First().Text()); got != "Sep 2023" {
		t.Errorf("first date = %q, want %q", got, "Sep 2023")
	}
	if items[0].Text != "jan" {
		t.Error("News reordered its input")
	}
}

func TestNewsUndatedItemsSortLast(t *testing.T) {
	items := []model.NewsItem{
		{Text: "undated"},
		{Date: model.NewDate(2021, 5, 1), Text: "old"},
		{Date: model.NewDate(2024, 2, 1), Text: "new"},
	}
	doc := newDoc(t)
	ops, err := News(items)
	apply(t, doc, ops, err)

	got := texts(find(doc, "#news-list .news-text"))
	if diff := cmp.Diff([]string{"new", "old", "undated"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := strings.TrimSpace(find(doc, "#news-list .news-date").Last().Text()); got != "" {
		t.Errorf("undated item shows date %q", got)
	}
}

func TestSelectedPublicationsTopThree(t *testing.T) {
	pubs := []model.Publication{
		{Title: "A", Year: 2020},
		{Title: "B", Year: 2022},
		{Title: "C", Year: 2021},
	}
	doc := newDoc(t)
	ops, err := SelectedPublications(pubs, nil)
	apply(t, doc, ops, err)
	got := texts(find(doc, "#selected-publications .publication-title"))
	if diff := cmp.Diff([]string{"B", "C", "A"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPublicationListMessages(t *testing.T) {
	tests := []struct {
		name   string
		render func() ([]viewport.Op, error)
		want   string
	}{
		{"absent", func() ([]viewport.Op, error) { return PublicationList(nil, nil) }, MsgLoadError},
		{"empty", func() ([]viewport.Op, error) { return PublicationList([]model.Publication{}, nil) }, MsgEmpty},
		{"no results", func() ([]viewport.Op, error) { return FilteredPublications(nil, nil) }, MsgNoResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t)
			ops, err := tt.render()
			apply(t, doc, ops, err)
			if got := find(doc, "#publications-list p.text-center").Text(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
	if MsgLoadError != "Error: Publications data could not be loaded." {
		t.Errorf("load error message = %q", MsgLoadError)
	}
}

func TestPublicationCard(t *testing.T) {
	pub := model.Publication{
		Title:   `Robust <b>Learning</b>`,
		Authors: []string{"Alan Turing", "Ada Lovelace", "Adam Smith"},
		Venue:   "NeurIPS",
		Year:    2023,
		Links: map[model.LinkKind]string{
			"blog":          "https://example.org/post",
			model.LinkCode:  "https://github.com/ada/robust",
			model.LinkPDF:   "https://example.org/paper.pdf?v=2&dl=1",
			model.LinkVideo: "",
		},
		Tags:     []string{"ml", "robustness"},
		Abstract: "We show that x < y.",
	}
	html, err := PublicationCard(pub, profile())
	if err != nil {
		t.Fatalf("PublicationCard: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse card: %v", err)
	}

	if got := doc.Find(".publication-title").Text(); got != pub.Title {
		t.Errorf("title = %q, want %q", got, pub.Title)
	}
	if doc.Find(".publication-title b").Length() != 0 {
		t.Error("title markup was not escaped")
	}
	if got := doc.Find(".publication-authors").Text(); got != "Alan Turing, Ada Lovelace, Adam Smith" {
		t.Errorf("authors = %q", got)
	}
	// First-name substring heuristic: "Ada" also matches "Adam".
	highlighted := texts(doc.Find(".publication-author-highlight"))
	if diff := cmp.Diff([]string{"Ada Lovelace", "Adam Smith"}, highlighted); diff != "" {
		t.Errorf("highlighted (-want +got):\n%s", diff)
	}
	if got := doc.Find(".publication-venue").Text(); got != "NeurIPS 2023" {
		t.Errorf("venue = %q", got)
	}

	var labels, hrefs []string
	doc.Find(".publication-link").Each(func(_ int, a *goquery.Selection) {
		labels = append(labels, a.Text())
		hrefs = append(hrefs, a.AttrOr("href", ""))
	})
	if diff := cmp.Diff([]string{"📄 PDF", "💻 Code", "blog"}, labels); diff != "" {
		t.Errorf("link labels (-want +got):\n%s", diff)
	}
	wantHrefs := []string{"https://example.org/paper.pdf?v=2&dl=1", "https://github.com/ada/robust", "https://example.org/post"}
	if diff := cmp.Diff(wantHrefs, hrefs); diff != "" {
		t.Errorf("link hrefs (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"ml", "robustness"}, texts(doc.Find(".publication-tag"))); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
	if got := strings.TrimSpace(doc.Find(".abstract-toggle").Text()); got != "Show Abstract" {
		t.Errorf("toggle = %q", got)
	}
	if got := doc.Find(".publication-abstract").Text(); got != "We show that x < y." {
		t.Errorf("abstract = %q", got)
	}
	if doc.Find(".bibtex-copy").Length() != 1 {
		t.Error("missing BibTeX button")
	}
}

func TestCardWithoutOptionalParts(t *testing.T) {
	html, err := PublicationCard(model.Publication{Title: "Plain", Authors: []string{"Ada Lovelace"}, Venue: "V", Year: 2020}, nil)
	if err != nil {
		t.Fatalf("PublicationCard: %v", err)
	}
	for _, class := range []string{"publication-links", "publication-tags", "abstract-toggle", "publication-abstract", "publication-author-highlight"} {
		if strings.Contains(html, class) {
			t.Errorf("card without data contains %q:\n%s", class, html)
		}
	}
}

func TestFilterOptions(t *testing.T) {
	pubs := []model.Publication{
		{Title: "A", Year: 2021, Tags: []string{"ml"}},
		{Title: "B", Year: 2023, Tags: []string{"graphs", "ml"}},
	}
	doc := newDoc(t)
	ops, err := FilterOptions(pubs)
	apply(t, doc, ops, err)

	if diff := cmp.Diff([]string{"All Years", "2023", "2021"}, texts(find(doc, "#year-filter option"))); diff != "" {
		t.Errorf("years (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"All Tags", "graphs", "ml"}, texts(find(doc, "#tag-filter option"))); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
	if got := doc.Value(YearFilter); got != "" {
		t.Errorf("default year value = %q, want empty", got)
	}
}

func TestToast(t *testing.T) {
	html, err := Toast("toast-1", "Saved <ok>")
	if err != nil {
		t.Fatalf("Toast: %v", err)
	}
	want := `<div class="toast" id="toast-1" role="status">Saved &lt;ok&gt;</div>`
	if html != want {
		t.Errorf("Toast = %s, want %s", html, want)
	}
}
