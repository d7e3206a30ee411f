package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats updates session and total monitoring durations and click counts.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetClicks(session, total int)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	clicksLbl  *LabelWidget
}

// NewSessionStats creates session, total and click labels in a grid layout
// starting at (row, startCol). If parent is nil, labels are positioned
// relative to the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(14)), totalLbl: Label(Width(14)), clicksLbl: Label(Width(18))}
	for i, l := range []*LabelWidget{s.sessionLbl, s.totalLbl, s.clicksLbl} {
		if parent != nil {
			Grid(l, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(l, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		}
	}
	s.sessionLbl.Configure(Txt("Session: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.clicksLbl.Configure(Txt("Clicks: 0 / 0"))
	return s
}

func minSec(d time.Duration) (int, int) {
	seconds := int(d.Seconds())
	return seconds / 60, seconds % 60
}

// SetSession updates the session duration display.
func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	m, sec := minSec(d)
	s.sessionLbl.Configure(Txt(fmt.Sprintf("Session: %02d:%02d", m, sec)))
}

// SetTotal updates the total duration display.
func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	m, sec := minSec(d)
	s.totalLbl.Configure(Txt(fmt.Sprintf("Total: %02d:%02d", m, sec)))
}

// SetClicks updates the click counters.
func (s *sessionStats) SetClicks(session, total int) {
	if s == nil || s.clicksLbl == nil {
		return
	}
	s.clicksLbl.Configure(Txt(fmt.Sprintf("Clicks: %d / %d", session, total)))
}
