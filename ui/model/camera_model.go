package model

import (
	"sync/atomic"

	"github.com/soocke/vacation-cam-go/domain/capture"
)

type sessionBox struct{ s capture.Session }

// CameraModel holds the bound camera session and whether a capture is in flight.
// The zero value has no session and is usable. Safe for concurrent use because the
// permission continuation and capture completions run off the UI thread.
type CameraModel struct {
	session atomic.Pointer[sessionBox]
	busy    atomic.Bool
}

// SetSession stores the bound session. A nil session clears it.
func (m *CameraModel) SetSession(s capture.Session) {
	if m == nil {
		return
	}
	if s == nil {
		m.session.Store(nil)
		return
	}
	m.session.Store(&sessionBox{s: s})
}

// Session returns the bound session while it is still active.
func (m *CameraModel) Session() (capture.Session, bool) {
	if m == nil {
		return nil, false
	}
	b := m.session.Load()
	if b == nil || !b.s.Active() {
		return nil, false
	}
	return b.s, true
}

// Bound reports whether an active session is held, busy or not.
func (m *CameraModel) Bound() bool {
	_, ok := m.Session()
	return ok
}

// Ready reports whether a capture can start now.
func (m *CameraModel) Ready() bool {
	_, ok := m.Session()
	return ok && !m.Busy()
}

// TryBegin marks a capture in flight. It reports false if one already is.
func (m *CameraModel) TryBegin() bool {
	if m == nil {
		return false
	}
	return m.busy.CompareAndSwap(false, true)
}

// End clears the in-flight mark.
func (m *CameraModel) End() {
	if m == nil {
		return
	}
	m.busy.Store(false)
}

// Busy reports whether a capture is in flight.
func (m *CameraModel) Busy() bool {
	if m == nil {
		return false
	}
	return m.busy.Load()
}
