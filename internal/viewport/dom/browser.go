//go:build js && wasm

package dom

import (
	"errors"
	"fmt"
	"syscall/js"
)

// MediaQuery is a viewport.Signal backed by window.matchMedia.
type MediaQuery struct {
	mql  js.Value
	post func(func())
}

// NewMediaQuery watches query. Change callbacks are handed to post so they
// run on the page's event loop.
func NewMediaQuery(query string, post func(func())) *MediaQuery {
	return &MediaQuery{
		mql:  js.Global().Get("window").Call("matchMedia", query),
		post: post,
	}
}

func (m *MediaQuery) Matches() bool {
	return m.mql.Get("matches").Bool()
}

func (m *MediaQuery) OnChange(fn func(bool)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		matches := args[0].Get("matches").Bool()
		m.post(func() { fn(matches) })
		return nil
	})
	m.mql.Call("addEventListener", "change", cb)
	return func() {
		m.mql.Call("removeEventListener", "change", cb)
		cb.Release()
	}
}

// LocalStorage stores preferences in window.localStorage.
type LocalStorage struct {
	storage js.Value
}

// NewLocalStorage binds to window.localStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{storage: js.Global().Get("localStorage")}
}

func (s *LocalStorage) Load(key string) (string, bool, error) {
	v := s.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (s *LocalStorage) Save(key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("writing localStorage: %v", r)
		}
	}()
	s.storage.Call("setItem", key, value)
	return nil
}

func (s *LocalStorage) Delete(key string) error {
	s.storage.Call("removeItem", key)
	return nil
}

// Clipboard writes through navigator.clipboard.
type Clipboard struct {
	post func(func())
}

// NewClipboard returns a clipboard whose completion callbacks are handed to
// post.
func NewClipboard(post func(func())) *Clipboard {
	return &Clipboard{post: post}
}

// Copy starts an asynchronous write and reports the outcome to done.
func (c *Clipboard) Copy(text string, done func(error)) {
	clip := js.Global().Get("navigator").Get("clipboard")
	if clip.IsUndefined() || clip.IsNull() {
		c.post(func() { done(errors.New("clipboard API unavailable")) })
		return
	}

	var onOK, onErr js.Func
	release := func() {
		onOK.Release()
		onErr.Release()
	}
	onOK = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		c.post(func() { done(nil) })
		return nil
	})
	onErr = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		msg := "clipboard write rejected"
		if len(args) > 0 {
			msg = args[0].Call("toString").String()
		}
		c.post(func() { done(errors.New(msg)) })
		return nil
	})
	clip.Call("writeText", text).Call("then", onOK, onErr)
}
