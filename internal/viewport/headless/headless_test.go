package headless

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

const page = `<!DOCTYPE html>
<html><head><title>Home</title></head>
<body>
  <h1 id="hero-name">Placeholder</h1>
  <ul id="news-list"><li>old</li></ul>
  <div class="slide">one<span class="caption">First</span></div>
  <div class="slide">two</div>
  <input id="search-input" value="">
  <select id="year-filter"><option value="">All Years</option><option value="2023">2023</option></select>
</body></html>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func TestWrites(t *testing.T) {
	doc := mustParse(t)

	doc.SetText(viewport.ID("hero-name"), "Ada <Lovelace>")
	if got := doc.Text(viewport.ID("hero-name")); got != "Ada <Lovelace>" {
		t.Errorf("text = %q", got)
	}

	doc.RenderFragment(viewport.ID("news-list"), `<li class="news-item">a</li><li class="news-item">b</li>`)
	if n := doc.Count("#news-list .news-item"); n != 2 {
		t.Errorf("news items = %d, want 2", n)
	}

	doc.SetAttribute(viewport.Document, "data-theme", "dark")
	if got := doc.Selection().Find("html").AttrOr("data-theme", ""); got != "dark" {
		t.Errorf("data-theme = %q, want dark", got)
	}
	doc.RemoveAttribute(viewport.Document, "data-theme")
	if _, ok := doc.Selection().Find("html").Attr("data-theme"); ok {
		t.Error("data-theme still set after RemoveAttribute")
	}

	slide := viewport.Class("slide").At(1)
	doc.ToggleClass(slide, "active", true)
	if !doc.HasClass(slide, "active") || doc.HasClass(slide.At(0), "active") {
		t.Error("ToggleClass touched the wrong element")
	}
	doc.ToggleClass(slide, "active", false)
	if doc.HasClass(slide, "active") {
		t.Error("class not removed")
	}

	doc.AppendFragment(viewport.Sel("body"), `<div id="toast">hi</div>`)
	if !doc.Has(viewport.ID("toast")) {
		t.Fatal("appended element missing")
	}
	doc.Remove(viewport.ID("toast"))
	if doc.Has(viewport.ID("toast")) {
		t.Error("element not removed")
	}

	html, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, "Ada &lt;Lovelace&gt;") {
		t.Errorf("serialized text not escaped: %s", html)
	}
}

func TestMissingTargetsAreSkipped(t *testing.T) {
	doc := mustParse(t)
	missing := viewport.ID("nope")
	doc.SetText(missing, "x")
	doc.RenderFragment(missing, "<p>x</p>")
	doc.Remove(missing)
	if doc.Has(missing) || doc.Text(missing) != "" || doc.Value(missing) != "" {
		t.Error("missing target reported content")
	}
	if doc.Has(viewport.Class("slide").At(5)) {
		t.Error("out-of-range index matched")
	}
}

func TestChildTarget(t *testing.T) {
	doc := mustParse(t)
	if got := doc.Text(viewport.Class("slide").At(0).Find(".caption")); got != "First" {
		t.Errorf("caption = %q, want First", got)
	}
	if doc.Has(viewport.Class("slide").At(1).Find(".caption")) {
		t.Error("second slide has no caption")
	}
}

func TestValues(t *testing.T) {
	doc := mustParse(t)
	year := viewport.ID("year-filter")
	if got := doc.Value(year); got != "" {
		t.Errorf("default select value = %q, want empty", got)
	}

	var seen []string
	doc.OnEvent(year, viewport.Change, func(ev *viewport.Event) { seen = append(seen, ev.Value) })
	doc.Choose(year, "2023")
	if got := doc.Value(year); got != "2023" {
		t.Errorf("select value = %q, want 2023", got)
	}
	if len(seen) != 1 || seen[0] != "2023" {
		t.Errorf("change events = %v", seen)
	}

	search := viewport.ID("search-input")
	doc.Type(search, "graph")
	if got := doc.Value(search); got != "graph" {
		t.Errorf("input value = %q, want graph", got)
	}
}

func TestEventsAndUnsubscribe(t *testing.T) {
	doc := mustParse(t)
	target := viewport.ID("hero-name")
	var order []int
	off1 := doc.OnEvent(target, viewport.Click, func(*viewport.Event) { order = append(order, 1) })
	doc.OnEvent(target, viewport.Click, func(*viewport.Event) { order = append(order, 2) })

	if !doc.Click(target) {
		t.Fatal("Click reported no handlers")
	}
	off1()
	doc.Click(target)
	want := []int{1, 2, 2}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if doc.Dispatch(viewport.ID("news-list"), &viewport.Event{Kind: viewport.Click}) {
		t.Error("dispatch to target without handlers reported true")
	}
	if doc.Handlers() != 1 {
		t.Errorf("Handlers = %d, want 1", doc.Handlers())
	}
}

func TestKeyPreventDefault(t *testing.T) {
	doc := mustParse(t)
	target := viewport.Sel("body")
	doc.OnEvent(target, viewport.KeyDown, func(ev *viewport.Event) {
		if ev.Key == "Home" {
			ev.PreventDefault()
		}
	})
	if !doc.Key(target, "Home") {
		t.Error("Home not prevented")
	}
	if doc.Key(target, "a") {
		t.Error("plain key prevented")
	}
}
