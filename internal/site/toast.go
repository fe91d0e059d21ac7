package site

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/scholarsite/internal/render"
	"github.com/ziadkadry99/scholarsite/internal/schedule"
	"github.com/ziadkadry99/scholarsite/internal/viewport"
)

// ToastHost is where toasts are attached.
var ToastHost = viewport.Sel("body")

// toast keeps at most one notification on screen. A new message replaces the
// current one and restarts its timers.
type toast struct {
	vp      viewport.ViewPort
	timer   *schedule.Slot
	visible time.Duration
	exit    time.Duration
	current viewport.Target
	shown   bool
}

func newToast(vp viewport.ViewPort, sched schedule.Scheduler, visible, exit time.Duration) *toast {
	return &toast{vp: vp, timer: schedule.NewSlot(sched), visible: visible, exit: exit}
}

func (t *toast) show(message string) error {
	t.dismiss()

	id := "toast-" + uuid.NewString()
	html, err := render.Toast(id, message)
	if err != nil {
		return err
	}
	t.vp.AppendFragment(ToastHost, html)
	t.current, t.shown = viewport.ID(id), true

	el := t.current
	t.timer.After(t.visible, func() {
		t.vp.ToggleClass(el, "toast-exit", true)
		t.timer.After(t.exit, func() {
			t.vp.Remove(el)
			t.shown = false
		})
	})
	return nil
}

func (t *toast) dismiss() {
	t.timer.Stop()
	if t.shown {
		t.vp.Remove(t.current)
		t.shown = false
	}
}

// ShowToast displays a transient status message.
func (a *App) ShowToast(message string) {
	if err := a.toast.show(message); err != nil {
		a.logger.Error("showing toast", "error", err)
	}
}
