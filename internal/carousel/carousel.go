// Package carousel drives the auto-advancing highlights carousel: slide
// index, autoplay, pause on hover or focus, and pointer, touch and keyboard
// navigation.
package carousel

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ziadkadry99/scholarsite/internal/schedule"
	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

// ContainerSelector locates the carousel root.
const ContainerSelector = ".carousel-container"

// State is the autoplay state.
type State int

const (
	// Idle means autoplay is off: reduced motion, fewer than two slides, or
	// the carousel was destroyed.
	Idle State = iota
	// Autoplaying means the tick timer is active.
	Autoplaying
	// Paused means the user is hovering, focused, or inside the cool-down.
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Autoplaying:
		return "autoplaying"
	case Paused:
		return "paused"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Timings holds the carousel delays.
type Timings struct {
	Autoplay       time.Duration
	CoolDown       time.Duration
	Resume         time.Duration
	MoveThrottle   time.Duration
	SwipeThreshold float64
}

// DefaultTimings returns the stock delays.
func DefaultTimings() Timings {
	return Timings{
		Autoplay:       3500 * time.Millisecond,
		CoolDown:       5000 * time.Millisecond,
		Resume:         1000 * time.Millisecond,
		MoveThrottle:   1000 * time.Millisecond,
		SwipeThreshold: 50,
	}
}

// timerMode records what the single timer slot currently holds.
type timerMode int

const (
	timerNone timerMode = iota
	timerTick
	timerCoolDown
	timerResume
)

type targets struct {
	container  viewport.Target
	viewport   viewport.Target
	track      viewport.Target
	slides     viewport.Target
	prev       viewport.Target
	next       viewport.Target
	indicators viewport.Target
	announcer  viewport.Target
}

func newTargets(container string) targets {
	return targets{
		container:  viewport.Sel(container),
		viewport:   viewport.Class("carousel-viewport").Within(container),
		track:      viewport.ID("carousel-track").Within(container),
		slides:     viewport.Class("carousel-slide").Within(container),
		prev:       viewport.ID("carousel-prev").Within(container),
		next:       viewport.ID("carousel-next").Within(container),
		indicators: viewport.Class("carousel-indicator").Within(container),
		announcer:  viewport.ID("carousel-announcer").Within(container),
	}
}

// Carousel is the controller for one carousel. All methods must be called
// from the scheduler's thread.
type Carousel struct {
	vp      viewport.ViewPort
	sched   schedule.Scheduler
	reduced viewport.Signal
	timings Timings
	logger  *slog.Logger
	t       targets

	count int
	index int

	timer *schedule.Slot
	mode  timerMode

	pointerInside     bool
	focusInside       bool
	pointerInViewport bool
	reducedMotion     bool
	destroyed         bool

	moves     *schedule.Throttle
	touching  bool
	scrolling bool
	startX    float64
	startY    float64

	subs viewport.Subscriptions
}

// Mount builds a controller for the carousel under ContainerSelector and
// starts it. reduced is the reduced-motion signal and may be nil. With no
// slides the controller stays inert.
func Mount(vp viewport.ViewPort, sched schedule.Scheduler, reduced viewport.Signal, timings Timings, logger *slog.Logger) *Carousel {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Carousel{
		vp:      vp,
		sched:   sched,
		reduced: reduced,
		timings: timings,
		logger:  logger.With("component", "carousel"),
		t:       newTargets(ContainerSelector),
		timer:   schedule.NewSlot(sched),
		moves:   schedule.NewThrottle(sched, timings.MoveThrottle),
	}
	c.start()
	return c
}

func (c *Carousel) start() {
	c.count = c.vp.Count(c.t.slides.Selector)
	if c.count == 0 {
		return
	}
	c.reducedMotion = c.reduced != nil && c.reduced.Matches()

	c.bind()
	c.updatePosition()
	c.startAutoplay()
	c.updateLabels()
	c.logger.Debug("carousel mounted", "slides", c.count, "reduced_motion", c.reducedMotion)
}

// Index returns the current slide index.
func (c *Carousel) Index() int { return c.index }

// Count returns the number of slides.
func (c *Carousel) Count() int { return c.count }

// State reports the autoplay state.
func (c *Carousel) State() State {
	switch {
	case c.destroyed, c.count <= 1, c.reducedMotion:
		return Idle
	case c.mode == timerTick:
		return Autoplaying
	}
	return Paused
}

// GoToNext advances one slide, wrapping at the end.
func (c *Carousel) GoToNext() {
	if !c.active() {
		return
	}
	c.UserInteraction()
	c.show((c.index + 1) % c.count)
}

// GoToPrevious steps back one slide, wrapping at the start.
func (c *Carousel) GoToPrevious() {
	if !c.active() {
		return
	}
	c.UserInteraction()
	c.show((c.index - 1 + c.count) % c.count)
}

// GoToSlide jumps to slide i. Out-of-range indexes and the current index are
// ignored.
func (c *Carousel) GoToSlide(i int) {
	if !c.active() || i < 0 || i >= c.count || i == c.index {
		return
	}
	c.UserInteraction()
	c.show(i)
}

// UserInteraction pauses autoplay and restarts the cool-down after which it
// resumes.
func (c *Carousel) UserInteraction() {
	if !c.active() {
		return
	}
	if c.reducedMotion {
		c.stopTimer()
		return
	}
	c.mode = timerCoolDown
	c.timer.After(c.timings.CoolDown, func() {
		c.mode = timerNone
		if !c.interacting() {
			c.startAutoplay()
		}
	})
}

// Destroy stops every timer and handler. Later calls are no-ops.
func (c *Carousel) Destroy() {
	if c.destroyed {
		return
	}
	c.stopTimer()
	c.subs.Release()
	c.destroyed = true
}

func (c *Carousel) active() bool {
	return !c.destroyed && c.count > 0
}

func (c *Carousel) interacting() bool {
	return c.mode == timerCoolDown || c.pointerInside || c.focusInside
}

func (c *Carousel) stopTimer() {
	c.timer.Stop()
	c.mode = timerNone
}

func (c *Carousel) startAutoplay() {
	if c.reducedMotion || c.count <= 1 {
		c.stopTimer()
		return
	}
	c.mode = timerTick
	c.timer.Every(c.timings.Autoplay, c.tick)
}

func (c *Carousel) tick() {
	c.show((c.index + 1) % c.count)
}

// pause reacts to the pointer or focus entering. A pending cool-down is kept
// so it still expires on schedule.
func (c *Carousel) pause() {
	if c.mode != timerCoolDown {
		c.stopTimer()
	}
}

// resumeLater reacts to the pointer or focus leaving.
func (c *Carousel) resumeLater() {
	if c.reducedMotion || c.interacting() {
		return
	}
	c.mode = timerResume
	c.timer.After(c.timings.Resume, func() {
		c.mode = timerNone
		if !c.interacting() {
			c.startAutoplay()
		}
	})
}

func (c *Carousel) setReducedMotion(on bool) {
	if c.destroyed {
		return
	}
	c.reducedMotion = on
	if on {
		c.stopTimer()
		return
	}
	if !c.interacting() {
		c.startAutoplay()
	}
}

func (c *Carousel) show(i int) {
	c.index = i
	c.updatePosition()
	c.announce()
}

func (c *Carousel) updatePosition() {
	c.vp.SetAttribute(c.t.track, "style", fmt.Sprintf("transform: translateX(%d%%)", -c.index*100))
	for i := 0; i < c.count; i++ {
		slide := c.t.slides.At(i)
		c.vp.ToggleClass(slide, "active", i == c.index)
		c.vp.SetAttribute(slide, "aria-hidden", strconv.FormatBool(i != c.index))
	}
	indicators := c.vp.Count(c.t.indicators.Selector)
	for i := 0; i < indicators; i++ {
		dot := c.t.indicators.At(i)
		c.vp.ToggleClass(dot, "active", i == c.index)
		c.vp.SetAttribute(dot, "aria-selected", strconv.FormatBool(i == c.index))
	}
}

func (c *Carousel) updateLabels() {
	for i := 0; i < c.count; i++ {
		c.vp.SetAttribute(c.t.slides.At(i), "aria-label", fmt.Sprintf("%d of %d", i+1, c.count))
	}
}

func (c *Carousel) announce() {
	caption := strings.TrimSpace(c.vp.Text(c.t.slides.At(c.index).Find(".carousel-caption")))
	if caption == "" || !c.vp.Has(c.t.announcer) {
		return
	}
	c.vp.SetText(c.t.announcer, fmt.Sprintf("Slide %d of %d: %s", c.index+1, c.count, caption))
}

func (c *Carousel) bind() {
	on := func(t viewport.Target, kind viewport.EventKind, h viewport.Handler) {
		c.subs.Add(c.vp.OnEvent(t, kind, h))
	}

	on(c.t.prev, viewport.Click, func(*viewport.Event) { c.GoToPrevious() })
	on(c.t.next, viewport.Click, func(*viewport.Event) { c.GoToNext() })
	indicators := c.vp.Count(c.t.indicators.Selector)
	for i := 0; i < indicators; i++ {
		i := i
		on(c.t.indicators.At(i), viewport.Click, func(*viewport.Event) { c.GoToSlide(i) })
	}

	on(c.t.container, viewport.PointerEnter, func(*viewport.Event) {
		c.pointerInside = true
		c.pause()
	})
	on(c.t.container, viewport.PointerLeave, func(*viewport.Event) {
		c.pointerInside = false
		c.resumeLater()
	})
	on(c.t.container, viewport.FocusIn, func(*viewport.Event) {
		c.focusInside = true
		c.pause()
	})
	on(c.t.container, viewport.FocusOut, func(*viewport.Event) {
		c.focusInside = false
		c.resumeLater()
	})

	on(c.t.viewport, viewport.PointerEnter, func(*viewport.Event) { c.pointerInViewport = true })
	on(c.t.viewport, viewport.PointerLeave, func(*viewport.Event) { c.pointerInViewport = false })
	on(c.t.viewport, viewport.PointerMove, func(*viewport.Event) {
		if c.pointerInViewport && c.moves.Allow() {
			c.GoToNext()
		}
	})

	on(c.t.track, viewport.TouchStart, c.touchStart)
	on(c.t.track, viewport.TouchMove, c.touchMove)
	on(c.t.track, viewport.TouchEnd, c.touchEnd)

	on(c.t.container, viewport.KeyDown, c.keyDown)

	if c.reduced != nil {
		c.subs.Add(c.reduced.OnChange(c.setReducedMotion))
	}
}

func (c *Carousel) touchStart(ev *viewport.Event) {
	c.touching = true
	c.scrolling = false
	c.startX, c.startY = ev.X, ev.Y
}

func (c *Carousel) touchMove(ev *viewport.Event) {
	if !c.touching {
		return
	}
	if math.Abs(ev.Y-c.startY) > math.Abs(ev.X-c.startX) {
		c.scrolling = true
	}
}

func (c *Carousel) touchEnd(ev *viewport.Event) {
	if !c.touching {
		return
	}
	c.touching = false
	if c.scrolling {
		return
	}
	diff := c.startX - ev.X
	if math.Abs(diff) <= c.timings.SwipeThreshold {
		return
	}
	if diff > 0 {
		c.GoToNext()
	} else {
		c.GoToPrevious()
	}
}

func (c *Carousel) keyDown(ev *viewport.Event) {
	switch ev.Key {
	case "ArrowLeft":
		ev.PreventDefault()
		c.GoToPrevious()
	case "ArrowRight":
		ev.PreventDefault()
		c.GoToNext()
	case "Home":
		ev.PreventDefault()
		c.GoToSlide(0)
	case "End":
		ev.PreventDefault()
		c.GoToSlide(c.count - 1)
	}
}
