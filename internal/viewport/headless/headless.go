// Package headless implements viewport.ViewPort over an in-memory HTML
// document. Events are delivered by calling Dispatch (or the Click, Type
// and Choose helpers) instead of a real user.
package headless

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

// Document is a goquery-backed view port. It is not safe for concurrent use.
type Document struct {
	doc      *goquery.Document
	next     int
	handlers map[handlerKey]map[int]viewport.Handler
}

type handlerKey struct {
	target viewport.Target
	kind   viewport.EventKind
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return &Document{doc: doc, handlers: make(map[handlerKey]map[int]viewport.Handler)}, nil
}

// ParseString reads an HTML page from a string.
func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

// HTML serializes the current document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

// Selection exposes the underlying document for assertions.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

func (d *Document) find(t viewport.Target) *goquery.Selection {
	matches := d.doc.Find(t.Selector)
	if t.Index < 0 || t.Index >= matches.Length() {
		return matches.Slice(0, 0)
	}
	s := matches.Eq(t.Index)
	if t.Child != "" {
		s = s.Find(t.Child).First()
	}
	return s
}

func (d *Document) Has(t viewport.Target) bool {
	return d.find(t).Length() > 0
}

func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

func (d *Document) Text(t viewport.Target) string {
	return d.find(t).Text()
}

func (d *Document) Value(t viewport.Target) string {
	s := d.find(t)
	if s.Length() == 0 {
		return ""
	}
	if goquery.NodeName(s) != "select" {
		return s.AttrOr("value", "")
	}
	opt := s.Find("option[selected]").First()
	if opt.Length() == 0 {
		opt = s.Find("option").First()
	}
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return opt.Text()
}

func (d *Document) SetText(t viewport.Target, text string) {
	d.find(t).SetText(text)
}

func (d *Document) SetAttribute(t viewport.Target, name, value string) {
	d.find(t).SetAttr(name, value)
}

func (d *Document) RemoveAttribute(t viewport.Target, name string) {
	d.find(t).RemoveAttr(name)
}

func (d *Document) ToggleClass(t viewport.Target, class string, on bool) {
	s := d.find(t)
	if on {
		s.AddClass(class)
	} else {
		s.RemoveClass(class)
	}
}

func (d *Document) HasClass(t viewport.Target, class string) bool {
	return d.find(t).HasClass(class)
}

func (d *Document) RenderFragment(t viewport.Target, html string) {
	d.find(t).SetHtml(html)
}

func (d *Document) AppendFragment(t viewport.Target, html string) {
	d.find(t).AppendHtml(html)
}

func (d *Document) Remove(t viewport.Target) {
	d.find(t).Remove()
}

func (d *Document) OnEvent(t viewport.Target, kind viewport.EventKind, h viewport.Handler) func() {
	key := handlerKey{target: t, kind: kind}
	if d.handlers[key] == nil {
		d.handlers[key] = make(map[int]viewport.Handler)
	}
	id := d.next
	d.next++
	d.handlers[key][id] = h
	return func() {
		delete(d.handlers[key], id)
	}
}

// Dispatch delivers ev to the handlers registered for exactly this target
// and event kind, in registration order. It reports whether any handler ran.
func (d *Document) Dispatch(t viewport.Target, ev *viewport.Event) bool {
	hs := d.handlers[handlerKey{target: t, kind: ev.Kind}]
	if len(hs) == 0 {
		return false
	}
	for _, id := range sortedIDs(hs) {
		if h, ok := hs[id]; ok {
			h(ev)
		}
	}
	return true
}

// Handlers returns how many handlers are registered across all targets.
func (d *Document) Handlers() int {
	n := 0
	for _, hs := range d.handlers {
		n += len(hs)
	}
	return n
}

// Click dispatches a click event.
func (d *Document) Click(t viewport.Target) bool {
	return d.Dispatch(t, &viewport.Event{Kind: viewport.Click})
}

// Type sets the value of an input and dispatches an input event.
func (d *Document) Type(t viewport.Target, value string) bool {
	d.find(t).SetAttr("value", value)
	return d.Dispatch(t, &viewport.Event{Kind: viewport.Input, Value: value})
}

// Choose selects the option with the given value and dispatches a change
// event.
func (d *Document) Choose(t viewport.Target, value string) bool {
	s := d.find(t)
	s.Find("option").Each(func(_ int, opt *goquery.Selection) {
		if opt.AttrOr("value", opt.Text()) == value {
			opt.SetAttr("selected", "selected")
		} else {
			opt.RemoveAttr("selected")
		}
	})
	return d.Dispatch(t, &viewport.Event{Kind: viewport.Change, Value: value})
}

// Key dispatches a keydown event and reports whether a handler prevented the
// default action.
func (d *Document) Key(t viewport.Target, key string) bool {
	ev := &viewport.Event{Kind: viewport.KeyDown, Key: key}
	d.Dispatch(t, ev)
	return ev.DefaultPrevented()
}

func sortedIDs(hs map[int]viewport.Handler) []int {
	ids := make([]int, 0, len(hs))
	for id := range hs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
