package model

import (
	"time"
)

// SessionModel tracks the photo session shown in the status bar: when it started,
// how many photos it holds and when the last one was saved.
// It is decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	started   time.Time
	photos    int
	lastSaved time.Time
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnPhotos updates the model with the current photo count observed at now.
// A growing count records now as the last save; a count of zero after photos
// existed starts a new session.
func (m *SessionModel) OnPhotos(count int, now time.Time) {
	if m == nil {
		return
	}
	if m.started.IsZero() {
		m.started = now
	}
	switch {
	case count > m.photos:
		m.lastSaved = now
	case count == 0 && m.photos > 0: // reset
		m.started = now
		m.lastSaved = time.Time{}
	}
	m.photos = count
}

// Values returns the session start, the photo count and the last save time (zero if none).
func (m *SessionModel) Values() (started time.Time, photos int, lastSaved time.Time) {
	if m == nil {
		return
	}
	return m.started, m.photos, m.lastSaved
}
