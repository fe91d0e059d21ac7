//go:build js && wasm

// Package dom binds viewport.ViewPort to the browser document through
// syscall/js. Event handlers run synchronously inside the JS callback, so
// they must not block.
package dom

import (
	"syscall/js"

	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

// Document is the live browser document.
type Document struct {
	doc js.Value
}

// New binds to window.document.
func New() *Document {
	return &Document{doc: js.Global().Get("document")}
}

func (d *Document) element(t viewport.Target) (js.Value, bool) {
	list := d.doc.Call("querySelectorAll", t.Selector)
	if t.Index < 0 || t.Index >= list.Get("length").Int() {
		return js.Null(), false
	}
	el := list.Call("item", t.Index)
	if t.Child != "" {
		el = el.Call("querySelector", t.Child)
	}
	if el.IsNull() || el.IsUndefined() {
		return js.Null(), false
	}
	return el, true
}

func (d *Document) Has(t viewport.Target) bool {
	_, ok := d.element(t)
	return ok
}

func (d *Document) Count(selector string) int {
	return d.doc.Call("querySelectorAll", selector).Get("length").Int()
}

func (d *Document) Text(t viewport.Target) string {
	el, ok := d.element(t)
	if !ok {
		return ""
	}
	return el.Get("textContent").String()
}

func (d *Document) Value(t viewport.Target) string {
	el, ok := d.element(t)
	if !ok {
		return ""
	}
	v := el.Get("value")
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}

func (d *Document) SetText(t viewport.Target, text string) {
	if el, ok := d.element(t); ok {
		el.Set("textContent", text)
	}
}

func (d *Document) SetAttribute(t viewport.Target, name, value string) {
	if el, ok := d.element(t); ok {
		el.Call("setAttribute", name, value)
	}
}

func (d *Document) RemoveAttribute(t viewport.Target, name string) {
	if el, ok := d.element(t); ok {
		el.Call("removeAttribute", name)
	}
}

func (d *Document) ToggleClass(t viewport.Target, class string, on bool) {
	if el, ok := d.element(t); ok {
		el.Get("classList").Call("toggle", class, on)
	}
}

func (d *Document) HasClass(t viewport.Target, class string) bool {
	el, ok := d.element(t)
	if !ok {
		return false
	}
	return el.Get("classList").Call("contains", class).Bool()
}

func (d *Document) RenderFragment(t viewport.Target, html string) {
	if el, ok := d.element(t); ok {
		el.Set("innerHTML", html)
	}
}

func (d *Document) AppendFragment(t viewport.Target, html string) {
	if el, ok := d.element(t); ok {
		el.Call("insertAdjacentHTML", "beforeend", html)
	}
}

func (d *Document) Remove(t viewport.Target) {
	if el, ok := d.element(t); ok {
		el.Call("remove")
	}
}

func (d *Document) OnEvent(t viewport.Target, kind viewport.EventKind, h viewport.Handler) func() {
	el, ok := d.element(t)
	if !ok {
		return func() {}
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		jsEvent := args[0]
		ev := convert(kind, jsEvent)
		h(ev)
		if ev.DefaultPrevented() {
			jsEvent.Call("preventDefault")
		}
		return nil
	})
	el.Call("addEventListener", string(kind), fn)
	return func() {
		el.Call("removeEventListener", string(kind), fn)
		fn.Release()
	}
}

func convert(kind viewport.EventKind, e js.Value) *viewport.Event {
	ev := &viewport.Event{Kind: kind}
	switch kind {
	case viewport.Input, viewport.Change:
		if target := e.Get("target"); !target.IsUndefined() && !target.IsNull() {
			ev.Value = target.Get("value").String()
		}
	case viewport.KeyDown:
		ev.Key = e.Get("key").String()
	case viewport.TouchStart, viewport.TouchMove:
		ev.X, ev.Y = touchPoint(e.Get("touches"))
	case viewport.TouchEnd:
		ev.X, ev.Y = touchPoint(e.Get("changedTouches"))
	case viewport.PointerMove, viewport.PointerEnter, viewport.PointerLeave:
		ev.X = e.Get("clientX").Float()
		ev.Y = e.Get("clientY").Float()
	}
	return ev
}

func touchPoint(list js.Value) (float64, float64) {
	if list.IsUndefined() || list.IsNull() || list.Get("length").Int() == 0 {
		return 0, 0
	}
	touch := list.Index(0)
	return touch.Get("clientX").Float(), touch.Get("clientY").Float()
}
