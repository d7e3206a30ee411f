package model

import (
	"image"
	"time"
)

// Hit is the most recent click issued by the monitor.
type Hit struct {
	Target int // zero-based slot index
	Point  image.Point
	Score  float64
	At     time.Time
}

// HitModel holds the last hit. Zero value means nothing has fired yet.
// No synchronization needed: updates occur on the UI thread tick.
type HitModel struct {
	last Hit
	ok   bool
}

func NewHitModel() *HitModel { return &HitModel{} }

// Record stores h as the latest hit.
func (m *HitModel) Record(h Hit) {
	if m == nil {
		return
	}
	m.last, m.ok = h, true
}

// Last returns the latest hit and whether one exists.
func (m *HitModel) Last() (Hit, bool) {
	if m == nil {
		return Hit{}, false
	}
	return m.last, m.ok
}

// Reset forgets the latest hit.
func (m *HitModel) Reset() {
	if m == nil {
		return
	}
	m.last, m.ok = Hit{}, false
}
