// Package theme resolves and switches the light/dark page theme.
package theme

import (
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

// Theme is the effective page theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Key is the preference key the theme is stored under.
const Key = "theme"

// Attribute is the document attribute carrying an explicit theme.
const Attribute = "data-theme"

var (
	ToggleButton = viewport.Class("theme-toggle")
	ToggleIcon   = viewport.Class("theme-toggle-icon")
)

// Parse validates a stored value. Anything but "light" or "dark" is unset.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is the toggle glyph shown while t is active.
func (t Theme) Icon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

// Store persists string preferences.
type Store interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Delete(key string) error
}

// Controller owns the document theme attribute and the toggle icon.
type Controller struct {
	vp     viewport.ViewPort
	store  Store
	dark   viewport.Signal
	logger *slog.Logger

	current  Theme
	explicit bool
	subs     viewport.Subscriptions
}

// New builds a controller. dark is the system dark-mode signal and may be
// nil when the host has none.
func New(vp viewport.ViewPort, store Store, dark viewport.Signal, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		vp:     vp,
		store:  store,
		dark:   dark,
		logger: logger.With("component", "theme"),
	}
}

// Setup applies the initial theme and starts following the system signal.
func (c *Controller) Setup() {
	c.apply()
	if c.dark != nil {
		c.subs.Add(c.dark.OnChange(func(bool) {
			if _, ok := c.stored(); !ok {
				c.apply()
			}
		}))
	}
}

// Bind wires clicks on the toggle button and returns the unsubscribe func.
func (c *Controller) Bind() func() {
	return c.vp.OnEvent(ToggleButton, viewport.Click, func(*viewport.Event) {
		if _, err := c.Toggle(); err != nil {
			c.logger.Warn("theme not persisted", "error", err)
		}
	})
}

// Current returns the effective theme.
func (c *Controller) Current() Theme { return c.current }

// Explicit reports whether the effective theme came from a stored preference.
func (c *Controller) Explicit() bool { return c.explicit }

// Toggle flips the effective theme and persists the new value. The theme is
// applied even when persisting fails.
func (c *Controller) Toggle() (Theme, error) {
	next := c.current.Opposite()
	c.set(next, true)
	if err := c.store.Save(Key, string(next)); err != nil {
		return next, fmt.Errorf("saving theme: %w", err)
	}
	return next, nil
}

// Close stops following the system signal.
func (c *Controller) Close() {
	c.subs.Release()
}

// Resolve picks the effective theme: a stored preference wins, then the
// system signal, then light.
func Resolve(stored Theme, hasStored, systemDark bool) (Theme, bool) {
	if hasStored {
		return stored, true
	}
	if systemDark {
		return Dark, false
	}
	return Light, false
}

func (c *Controller) apply() {
	stored, ok := c.stored()
	systemDark := c.dark != nil && c.dark.Matches()
	t, explicit := Resolve(stored, ok, systemDark)
	c.set(t, explicit)
}

func (c *Controller) stored() (Theme, bool) {
	t, ok, err := Stored(c.store)
	if err != nil {
		c.logger.Warn("reading theme preference", "error", err)
		return "", false
	}
	return t, ok
}

// Stored reads the persisted theme. Invalid values count as unset.
func Stored(store Store) (Theme, bool, error) {
	raw, ok, err := store.Load(Key)
	if err != nil || !ok {
		return "", false, err
	}
	t, ok := Parse(raw)
	return t, ok, nil
}

func (c *Controller) set(t Theme, explicit bool) {
	c.current = t
	c.explicit = explicit
	switch {
	case explicit:
		c.vp.SetAttribute(viewport.Document, Attribute, string(t))
	case t == Dark:
		c.vp.SetAttribute(viewport.Document, Attribute, string(Dark))
	default:
		c.vp.RemoveAttribute(viewport.Document, Attribute)
	}
	c.vp.SetText(ToggleIcon, t.Icon())
}
