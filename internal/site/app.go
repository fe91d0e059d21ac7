// Package site wires the page runtime: data loading, region rendering, the
// publications page filters, abstract disclosure, BibTeX export, the toast,
// the theme toggle and the carousel. One App is built per page and passed
// by reference; there is no package-level state.
package site

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ziadkadry99/scholarsite/internal/carousel"
	"github.com/ziadkadry99/scholarsite/internal/datastore"
	"github.com/ziadkadry99/scholarsite/internal/filter"
	"github.com/ziadkadry99/scholarsite/internal/model"
	"github.com/ziadkadry99/scholarsite/internal/render"
	"github.com/ziadkadry99/scholarsite/internal/schedule"
	"github.com/ziadkadry99/scholarsite/internal/theme"
	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

// SearchInput is the publications page search box.
var SearchInput = viewport.ID("search-input")

// PageKind selects page-specific behavior.
type PageKind int

const (
	PageHome PageKind = iota
	PagePublications
)

func (k PageKind) String() string {
	if k == PagePublications {
		return "publications"
	}
	return "home"
}

// PageKindFor classifies a page by its URL path.
func PageKindFor(path string) PageKind {
	if strings.Contains(path, "publications.html") {
		return PagePublications
	}
	return PageHome
}

// ParsePageKind maps a command-line page name to a kind.
func ParsePageKind(name string) (PageKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "home", "index":
		return PageHome, nil
	case "publications":
		return PagePublications, nil
	}
	return PageHome, errors.New("unknown page " + strconv.Quote(name) + ": want home or publications")
}

// Loader fetches the site documents.
type Loader interface {
	Load(ctx context.Context) datastore.Data
}

// Timings holds the page runtime delays.
type Timings struct {
	SearchDebounce time.Duration
	ToastVisible   time.Duration
	ToastExit      time.Duration
	Carousel       carousel.Timings
}

// DefaultTimings returns the stock delays.
func DefaultTimings() Timings {
	return Timings{
		SearchDebounce: 300 * time.Millisecond,
		ToastVisible:   3000 * time.Millisecond,
		ToastExit:      300 * time.Millisecond,
		Carousel:       carousel.DefaultTimings(),
	}
}

// Deps are the capabilities an App runs on.
type Deps struct {
	View          viewport.ViewPort
	Scheduler     schedule.Scheduler
	Data          Loader
	Preferences   theme.Store
	DarkMode      viewport.Signal
	ReducedMotion viewport.Signal
	Clipboard     Clipboard
	Logger        *slog.Logger
	Page          PageKind
	Timings       Timings
}

// App is the page runtime.
type App struct {
	vp      viewport.ViewPort
	sched   schedule.Scheduler
	loader  Loader
	clip    Clipboard
	reduced viewport.Signal
	logger  *slog.Logger
	page    PageKind
	timings Timings

	data     datastore.Data
	theme    *theme.Controller
	carousel *carousel.Carousel

	sorted []model.Publication
	search *schedule.Debouncer

	listeners viewport.Subscriptions
	cards     map[string]*viewport.Subscriptions
	toast     *toast
}

// New validates deps and builds an App. Nothing touches the view until Init.
func New(deps Deps) (*App, error) {
	if deps.View == nil {
		return nil, errors.New("site: view port is required")
	}
	if deps.Scheduler == nil {
		return nil, errors.New("site: scheduler is required")
	}
	if deps.Data == nil {
		return nil, errors.New("site: data loader is required")
	}
	if deps.Preferences == nil {
		deps.Preferences = theme.NewMemoryStore()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Timings == (Timings{}) {
		deps.Timings = DefaultTimings()
	}

	a := &App{
		vp:      deps.View,
		sched:   deps.Scheduler,
		loader:  deps.Data,
		clip:    deps.Clipboard,
		reduced: deps.ReducedMotion,
		logger:  deps.Logger.With("component", "site"),
		page:    deps.Page,
		timings: deps.Timings,
		cards:   make(map[string]*viewport.Subscriptions),
	}
	a.theme = theme.New(deps.View, deps.Preferences, deps.DarkMode, deps.Logger)
	a.toast = newToast(deps.View, deps.Scheduler, deps.Timings.ToastVisible, deps.Timings.ToastExit)
	a.search = schedule.NewDebouncer(deps.Scheduler, deps.Timings.SearchDebounce, a.applyFilters)
	return a, nil
}

// Init runs the page startup sequence: theme, joint data load, listeners,
// region rendering, then the carousel. Nothing is rendered before every
// document fetch has settled.
func (a *App) Init(ctx context.Context) {
	a.theme.Setup()
	a.data = a.loader.Load(ctx)
	a.setupListeners()
	a.renderContent()
	if a.page == PagePublications {
		a.initPublicationsPage()
	}
	if a.vp.Has(viewport.Sel(carousel.ContainerSelector)) {
		a.carousel = carousel.Mount(a.vp, a.sched, a.reduced, a.timings.Carousel, a.logger)
	}
	a.logger.Debug("page ready", "page", a.page)
}

// Data returns the loaded documents.
func (a *App) Data() datastore.Data { return a.data }

// Theme returns the theme controller.
func (a *App) Theme() *theme.Controller { return a.theme }

// Carousel returns the mounted carousel, or nil when the page has none.
func (a *App) Carousel() *carousel.Carousel { return a.carousel }

// Close releases every handler and timer the App owns.
func (a *App) Close() {
	a.search.Cancel()
	a.toast.dismiss()
	a.listeners.Release()
	for _, subs := range a.cards {
		subs.Release()
	}
	if a.carousel != nil {
		a.carousel.Destroy()
	}
	a.theme.Close()
}

func (a *App) setupListeners() {
	a.listeners.Add(a.theme.Bind())
}

func (a *App) renderContent() {
	viewport.Apply(a.vp, render.Identity(a.data.Site))
	viewport.Apply(a.vp, render.About(a.data.Site))
	ops, err := render.Interests(a.data.Site)
	a.apply("interests", ops, err)
	ops, err = render.News(a.data.News)
	a.apply("news", ops, err)

	ops, err = render.SelectedPublications(a.data.Publications, a.data.Site)
	if a.apply("selected publications", ops, err) {
		a.bindCards(render.SelectedList, filter.Top(a.data.Publications, render.SelectedLimit))
	}
}

func (a *App) initPublicationsPage() {
	ops, err := render.FilterOptions(a.data.Publications)
	a.apply("filter options", ops, err)
	if a.data.Publications != nil {
		a.sorted = filter.SortByYear(a.data.Publications)
	}

	a.listeners.Add(a.vp.OnEvent(SearchInput, viewport.Input, func(*viewport.Event) { a.search.Trigger() }))
	a.listeners.Add(a.vp.OnEvent(render.YearFilter, viewport.Change, func(*viewport.Event) { a.applyFilters() }))
	a.listeners.Add(a.vp.OnEvent(render.TagFilter, viewport.Change, func(*viewport.Event) { a.applyFilters() }))

	ops, err = render.PublicationList(a.data.Publications, a.data.Site)
	if a.apply("publication list", ops, err) {
		a.bindCards(render.PublicationsList, a.sorted)
	}
}

// Criteria reads the current filter controls.
func (a *App) Criteria() filter.Criteria {
	c := filter.Criteria{
		Text: a.vp.Value(SearchInput),
		Tag:  a.vp.Value(render.TagFilter),
	}
	if y := a.vp.Value(render.YearFilter); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			a.logger.Warn("ignoring year filter", "value", y)
		} else {
			c.Year = year
		}
	}
	return c
}

// Filtered returns the publications matching the current controls, in the
// year-sorted listing order.
func (a *App) Filtered() []model.Publication {
	return filter.Apply(a.sorted, a.Criteria())
}

func (a *App) applyFilters() {
	if a.data.Publications == nil {
		ops, err := render.PublicationList(nil, a.data.Site)
		a.apply("publication list", ops, err)
		return
	}
	results := a.Filtered()
	ops, err := render.FilteredPublications(results, a.data.Site)
	if a.apply("filtered publications", ops, err) {
		a.bindCards(render.PublicationsList, results)
	}
}

// bindCards attaches the abstract and BibTeX buttons of the cards just
// rendered into region. Bindings from an earlier render are released first.
func (a *App) bindCards(region viewport.Target, pubs []model.Publication) {
	subs := a.cards[region.Selector]
	if subs == nil {
		subs = &viewport.Subscriptions{}
		a.cards[region.Selector] = subs
	}
	subs.Release()

	copyButtons := viewport.Class("bibtex-copy").Within(region.Selector)
	toggles := viewport.Class("abstract-toggle").Within(region.Selector)
	abstracts := viewport.Class("publication-abstract").Within(region.Selector)

	withAbstract := 0
	for i, p := range pubs {
		pub := p
		subs.Add(a.vp.OnEvent(copyButtons.At(i), viewport.Click, func(*viewport.Event) { a.CopyBibTeX(pub) }))
		if pub.Abstract == "" {
			continue
		}
		button, abstract := toggles.At(withAbstract), abstracts.At(withAbstract)
		subs.Add(a.vp.OnEvent(button, viewport.Click, func(*viewport.Event) { a.ToggleAbstract(button, abstract) }))
		withAbstract++
	}
}

// ToggleAbstract shows or hides an abstract and relabels its button.
func (a *App) ToggleAbstract(button, abstract viewport.Target) {
	showing := a.vp.HasClass(abstract, "show")
	a.vp.ToggleClass(abstract, "show", !showing)
	if showing {
		a.vp.SetText(button, "Show Abstract")
	} else {
		a.vp.SetText(button, "Hide Abstract")
	}
}

// apply writes rendered ops and reports whether anything was rendered.
// Render failures are logged and leave the region untouched.
func (a *App) apply(region string, ops []viewport.Op, err error) bool {
	if err != nil {
		a.logger.Error("rendering region", "region", region, "error", err)
		return false
	}
	viewport.Apply(a.vp, ops)
	return len(ops) > 0
}
