package presenter

import (
	"image"
	"sync"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/monitor"
	"github.com/soocke/pixel-clicker-go/ui/model"
)

// StatusView shows the status line and the patch of the latest hit.
type StatusView interface {
	SetStatus(text string, isError bool)
	UpdateHit(img image.Image)
}

// StatusPresenter receives monitor events from any goroutine and flushes
// them to the view on Tick.
type StatusPresenter struct {
	view    StatusView
	session *model.SessionModel
	hits    *model.HitModel

	mu      sync.Mutex
	pending []monitor.Event
	latest  string
}

func NewStatusPresenter(view StatusView, session *model.SessionModel, hits *model.HitModel) *StatusPresenter {
	return &StatusPresenter{view: view, session: session, hits: hits}
}

// OnEvent queues an event. Safe to register as a monitor.Listener.
func (p *StatusPresenter) OnEvent(ev monitor.Event) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, ev)
	p.mu.Unlock()
}

// Tick applies queued events. Every hit is counted; only the newest status
// line and hit patch reach the view.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	evs := p.pending
	p.pending = nil
	p.mu.Unlock()
	if len(evs) == 0 {
		return
	}

	var (
		patch   image.Image
		status  string
		isError bool
	)
	for _, ev := range evs {
		if ev.Kind == monitor.EventFired {
			p.session.OnClick()
			p.hits.Record(model.Hit{Target: ev.Target, Point: ev.Point, Score: ev.Score, At: ev.At})
			if ev.Patch != nil {
				patch = ev.Patch.Image()
			}
		}
		status = ev.String()
		isError = ev.Err != nil && ev.Kind != monitor.EventSizeMismatch
	}
	if patch != nil {
		p.view.UpdateHit(patch)
	}
	if status != "" && status != p.latest {
		p.latest = status
		p.view.SetStatus(status, isError)
	}
}
