package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/scholarsite/internal/datastore"
	"github.com/ziadkadry99/scholarsite/internal/render"
	"github.com/ziadkadry99/scholarsite/internal/schedule"
	"github.com/ziadkadry99/scholarsite/internal/site"
	"github.com/ziadkadry99/scholarsite/internal/theme"
	"github.com/ziadkadry99/scholarsite/internal/viewport"
	"github.com/ziadkadry99/scholarsite/internal/viewport/headless"
)

type previewOptions struct {
	page          string
	htmlFile      string
	data          string
	search        string
	year          string
	tag           string
	dark          bool
	reducedMotion bool
}

var previewOpts previewOptions

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a page headlessly and print the resulting HTML",
	Long: `Loads a page template and the data documents, runs the page logic against
an in-memory document with a virtual clock, applies the given filters and
prints the rendered HTML. No browser is involved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := stderrLogger(cfg)

		opts := previewOpts
		if opts.data == "" {
			opts.data = cfg.DataPath()
		}
		kind, err := site.ParsePageKind(opts.page)
		if err != nil {
			return err
		}
		if opts.htmlFile == "" {
			opts.htmlFile = filepath.Join(cfg.SiteDir, pageFile(kind))
		}

		var prefs theme.Store = theme.NewMemoryStore()
		if _, err := os.Stat(cfg.StateDB); err == nil {
			database, err := openStateDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			prefs = theme.NewSQLStore(database)
		}

		html, err := renderPreview(cmd.Context(), opts, kind, prefs, siteTimings(cfg.Timings), logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	},
}

func pageFile(kind site.PageKind) string {
	if kind == site.PagePublications {
		return "publications.html"
	}
	return "index.html"
}

// renderPreview runs the page runtime over the template in opts and returns
// the final document.
func renderPreview(ctx context.Context, opts previewOptions, kind site.PageKind, prefs theme.Store, timings site.Timings, logger *slog.Logger) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := os.Open(opts.htmlFile)
	if err != nil {
		return "", fmt.Errorf("opening page template: %w", err)
	}
	defer f.Close()
	doc, err := headless.Parse(f)
	if err != nil {
		return "", err
	}

	store, err := datastore.NewForSource(opts.data, logger)
	if err != nil {
		return "", err
	}
	clock := schedule.NewVirtual(time.Now())

	app, err := site.New(site.Deps{
		View:          doc,
		Scheduler:     clock,
		Data:          store,
		Preferences:   prefs,
		DarkMode:      viewport.NewStaticSignal(opts.dark),
		ReducedMotion: viewport.NewStaticSignal(opts.reducedMotion),
		Clipboard:     &site.MemoryClipboard{},
		Logger:        logger,
		Page:          kind,
		Timings:       timings,
	})
	if err != nil {
		return "", err
	}
	app.Init(ctx)

	if kind == site.PagePublications {
		if opts.search != "" {
			doc.Type(site.SearchInput, opts.search)
			clock.Advance(timings.SearchDebounce)
		}
		if opts.year != "" {
			doc.Choose(render.YearFilter, opts.year)
		}
		if opts.tag != "" {
			doc.Choose(render.TagFilter, opts.tag)
		}
	}

	html, err := doc.HTML()
	app.Close()
	if err != nil {
		return "", fmt.Errorf("serializing page: %w", err)
	}
	return html, nil
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewOpts.page, "page", "home", "page to render: home or publications")
	f.StringVar(&previewOpts.htmlFile, "html", "", "page template (default: the page file in site_dir)")
	f.StringVar(&previewOpts.data, "data", "", "data directory or http(s) base URL (default: data_dir)")
	f.StringVar(&previewOpts.search, "search", "", "publications search text")
	f.StringVar(&previewOpts.year, "year", "", "publications year filter")
	f.StringVar(&previewOpts.tag, "tag", "", "publications tag filter")
	f.BoolVar(&previewOpts.dark, "dark", false, "simulate a system dark-mode preference")
	f.BoolVar(&previewOpts.reducedMotion, "reduced-motion", false, "simulate a reduced-motion preference")
	rootCmd.AddCommand(previewCmd)
}
