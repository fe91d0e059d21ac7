package site

import (
	"errors"
	"sync"

	"github.com/ziadkadry99/scholarsite/internal/bibtex"
	"github.com/ziadkadry99/scholarsite/internal/model"
)

// MsgCopied is shown after a successful BibTeX copy.
const MsgCopied = "BibTeX copied to clipboard!"

// ErrNoClipboard is reported when the host offers no clipboard.
var ErrNoClipboard = errors.New("clipboard unavailable")

// Clipboard writes text to the system clipboard. done runs on the page's
// scheduler goroutine once the write settles.
type Clipboard interface {
	Copy(text string, done func(error))
}

// MemoryClipboard records copies in memory and completes them immediately.
type MemoryClipboard struct {
	mu     sync.Mutex
	copies []string
	// Err, when set, fails every copy.
	Err error
}

func (c *MemoryClipboard) Copy(text string, done func(error)) {
	c.mu.Lock()
	err := c.Err
	if err == nil {
		c.copies = append(c.copies, text)
	}
	c.mu.Unlock()
	if done != nil {
		done(err)
	}
}

// Last returns the most recent successful copy.
func (c *MemoryClipboard) Last() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.copies) == 0 {
		return "", false
	}
	return c.copies[len(c.copies)-1], true
}

// Copies returns every successful copy in order.
func (c *MemoryClipboard) Copies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.copies...)
}

// CopyBibTeX puts the publication's BibTeX entry on the clipboard and
// confirms with a toast. Failures are logged only.
func (a *App) CopyBibTeX(pub model.Publication) {
	entry := bibtex.Entry(pub)
	if a.clip == nil {
		a.logger.Error("failed to copy BibTeX", "key", bibtex.Key(pub), "error", ErrNoClipboard)
		return
	}
	a.clip.Copy(entry, func(err error) {
		if err != nil {
			a.logger.Error("failed to copy BibTeX", "key", bibtex.Key(pub), "error", err)
			return
		}
		a.ShowToast(MsgCopied)
	})
}
