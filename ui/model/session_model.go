package model

import (
	"time"
)

// SessionModel tracks the current session duration, the accumulated active
// time and the clicks issued while monitoring.
// It is decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	active              bool
	sessionStart        time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration
	sessionClicks       int
	totalClicks         int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current monitoring state and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(monitoring bool, now time.Time) {
	if m == nil {
		return
	}
	if monitoring {
		if !m.active { // transition off -> on
			m.active = true
			m.sessionStart = now
			m.lastSessionDuration = 0
			m.sessionClicks = 0
		}
		m.lastSessionDuration = now.Sub(m.sessionStart)
	} else if m.active { // transition on -> off
		m.lastSessionDuration = now.Sub(m.sessionStart)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// OnClick counts one click towards the session and the total.
func (m *SessionModel) OnClick() {
	if m == nil {
		return
	}
	m.sessionClicks++
	m.totalClicks++
}

// Values returns the current session duration and the total accumulated duration.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Clicks returns the session and total click counts.
func (m *SessionModel) Clicks() (session, total int) {
	if m == nil {
		return 0, 0
	}
	return m.sessionClicks, m.totalClicks
}
