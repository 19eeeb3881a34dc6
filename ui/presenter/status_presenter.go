package presenter

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/soocke/vacation-cam-go/domain/screen"
	"github.com/soocke/vacation-cam-go/ui/model"
)

// SnapshotSource reads the current application state.
type SnapshotSource interface{ Snapshot() screen.Snapshot }

// StatusView displays the one-line session summary.
type StatusView interface{ SetStatus(text string) }

// StatusPresenter formats the session summary from the model to the view.
// Capture failures are logged by the capture service and never shown here.
type StatusPresenter struct {
	sess  *model.SessionModel
	state SnapshotSource
	view  StatusView
	last  string
}

// NewStatusPresenter returns a new StatusPresenter.
func NewStatusPresenter(sess *model.SessionModel, state SnapshotSource, view StatusView) *StatusPresenter {
	return &StatusPresenter{sess: sess, state: state, view: view}
}

// Tick advances the session model and pushes the summary to the view when it changed.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.state == nil || p.view == nil {
		return
	}
	p.sess.OnPhotos(len(p.state.Snapshot().Photos), now)
	text := FormatStatus(p.sess, now)
	if text == p.last {
		return
	}
	p.last = text
	p.view.SetStatus(text)
}

// FormatStatus renders the session summary relative to now.
func FormatStatus(sess *model.SessionModel, now time.Time) string {
	started, photos, lastSaved := sess.Values()
	parts := []string{english.Plural(photos, "photo", "photos")}
	if !lastSaved.IsZero() {
		parts = append(parts, "last saved "+humanize.RelTime(lastSaved, now, "ago", "from now"))
	}
	if !started.IsZero() {
		parts = append(parts, "session started "+humanize.RelTime(started, now, "ago", "from now"))
	}
	return strings.Join(parts, " | ")
}
