//go:build js && wasm

// Command wasm is the browser entry point. Build it with
// GOOS=js GOARCH=wasm and load it from index.html and publications.html.
package main

import (
	"context"
	"os"
	"syscall/js"

	"github.com/ziadkadry99/scholarsite/internal/datastore"
	"github.com/ziadkadry99/scholarsite/internal/logging"
	"github.com/ziadkadry99/scholarsite/internal/schedule"
	"github.com/ziadkadry99/scholarsite/internal/site"
	"github.com/ziadkadry99/scholarsite/internal/viewport/dom"
)

func main() {
	logger := logging.New(os.Stderr, "info")
	location := js.Global().Get("location")

	store, err := datastore.NewForPage(location.Get("href").String(), nil, logger)
	if err != nil {
		logger.Error("resolving data location", "error", err)
		return
	}

	loop := schedule.NewLoop()
	app, err := site.New(site.Deps{
		View:          dom.New(),
		Scheduler:     loop,
		Data:          store,
		Preferences:   dom.NewLocalStorage(),
		DarkMode:      dom.NewMediaQuery("(prefers-color-scheme: dark)", loop.Post),
		ReducedMotion: dom.NewMediaQuery("(prefers-reduced-motion: reduce)", loop.Post),
		Clipboard:     dom.NewClipboard(loop.Post),
		Logger:        logger,
		Page:          site.PageKindFor(location.Get("pathname").String()),
	})
	if err != nil {
		logger.Error("starting page", "error", err)
		return
	}

	ctx := context.Background()
	loop.Post(func() { app.Init(ctx) })
	if err := loop.Run(ctx); err != nil {
		logger.Error("event loop stopped", "error", err)
	}
}
