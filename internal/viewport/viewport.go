// Package viewport is the display surface the page logic writes to. The
// browser binding and the headless HTML document both implement ViewPort,
// so rendering, filtering, theme and carousel code never touch a real DOM.
package viewport

import (
	"strconv"
	"strings"
)

// Target addresses one element: the Index-th match of Selector (document
// order), optionally narrowed to the first descendant matching Child.
type Target struct {
	Selector string
	Index    int
	Child    string
}

// ID targets the element with the given id.
func ID(id string) Target { return Target{Selector: "#" + id} }

// Class targets the first element carrying the class.
func Class(name string) Target { return Target{Selector: "." + name} }

// Sel targets the first match of an arbitrary CSS selector.
func Sel(selector string) Target { return Target{Selector: selector} }

// Document targets the root element, where document-level attributes live.
var Document = Target{Selector: "html"}

// At returns the same selector pointed at the i-th match.
func (t Target) At(i int) Target {
	t.Index = i
	return t
}

// Find narrows the target to its first descendant matching child.
func (t Target) Find(child string) Target {
	t.Child = child
	return t
}

// Within scopes the selector under a parent selector.
func (t Target) Within(parent string) Target {
	t.Selector = parent + " " + t.Selector
	return t
}

func (t Target) String() string {
	var b strings.Builder
	b.WriteString(t.Selector)
	if t.Index > 0 {
		b.WriteString("[")
		b.WriteString(strconv.Itoa(t.Index))
		b.WriteString("]")
	}
	if t.Child != "" {
		b.WriteString(" > ")
		b.WriteString(t.Child)
	}
	return b.String()
}

// ViewPort is the capability set the page logic needs. Operations on a
// target that does not exist are silently skipped.
type ViewPort interface {
	Has(t Target) bool
	Count(selector string) int
	Text(t Target) string
	// Value returns the current value of a form control.
	Value(t Target) string

	SetText(t Target, text string)
	SetAttribute(t Target, name, value string)
	RemoveAttribute(t Target, name string)
	ToggleClass(t Target, class string, on bool)
	HasClass(t Target, class string) bool
	// RenderFragment replaces the target's children with trusted markup.
	RenderFragment(t Target, html string)
	// AppendFragment adds trusted markup after the target's last child.
	AppendFragment(t Target, html string)
	Remove(t Target)

	// OnEvent registers h for events of kind on the target and returns a
	// function that removes the registration.
	OnEvent(t Target, kind EventKind, h Handler) (unsubscribe func())
}

// EventKind names a UI event using its DOM event type.
type EventKind string

const (
	Click        EventKind = "click"
	Input        EventKind = "input"
	Change       EventKind = "change"
	PointerEnter EventKind = "mouseenter"
	PointerLeave EventKind = "mouseleave"
	PointerMove  EventKind = "mousemove"
	FocusIn      EventKind = "focusin"
	FocusOut     EventKind = "focusout"
	KeyDown      EventKind = "keydown"
	TouchStart   EventKind = "touchstart"
	TouchMove    EventKind = "touchmove"
	TouchEnd     EventKind = "touchend"
)

// Event carries the fields of a UI event the page logic reads.
type Event struct {
	Kind EventKind
	// Value is the control value for input and change events.
	Value string
	// Key is the key name for keydown events ("ArrowLeft", "Home", ...).
	Key string
	// X and Y are client coordinates of the pointer or first touch.
	X, Y float64

	prevented bool
}

// PreventDefault asks the host to skip its default action.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Handler reacts to an event.
type Handler func(*Event)

// Subscriptions collects unsubscribe functions so a group of handlers can be
// released together.
type Subscriptions []func()

// Add records an unsubscribe function.
func (s *Subscriptions) Add(unsubscribe func()) {
	*s = append(*s, unsubscribe)
}

// Release unsubscribes everything and empties the set.
func (s *Subscriptions) Release() {
	for _, fn := range *s {
		fn()
	}
	*s = nil
}
