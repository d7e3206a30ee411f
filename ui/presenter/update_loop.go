package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// Pump applies queued hotkey toggles on the UI thread before the
// presenters refresh. The zero value is usable (methods are nil-safe).
type Loop struct {
	Pump     func() int
	Monitor  *MonitorPresenter
	Status   *StatusPresenter
	Session  *SessionPresenter
	Schedule func()
}

func NewLoop(pump func() int, monitor *MonitorPresenter, status *StatusPresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Pump: pump, Monitor: monitor, Status: status, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Pump != nil {
		l.Pump()
	}
	if l.Monitor != nil {
		l.Monitor.Sync()
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
