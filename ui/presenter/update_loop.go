package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Screen   *ScreenPresenter
	Status   *StatusPresenter
	Before   func() // runs first on every tick, e.g. to pump pending dialogs
	Schedule func()
}

func NewLoop(screen *ScreenPresenter, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Screen: screen, Status: status, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Before != nil {
		l.Before()
	}
	// Screen first so the status line reflects what is on screen.
	if l.Screen != nil {
		l.Screen.Tick(now)
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
