package presenter

import (
	"time"

	"github.com/soocke/pixel-clicker-go/ui/model"
)

// RunningSource reports whether monitoring is active.
type RunningSource interface{ Running() bool }

// SessionView displays formatted session and total durations and click counts.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetClicks(session, total int)
}

// SessionPresenter formats session and total values from the model to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	src  RunningSource
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, src RunningSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, src: src, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.src == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.src.Running(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	sc, tc := p.sess.Clicks()
	p.view.SetClicks(sc, tc)
}
