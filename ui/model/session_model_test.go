package model

import (
	"testing"
	"time"
)

func TestSessionModel_BasicLifecycle(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	// Start at t0 and run for 5s.
	m.OnTick(true, base)
	// Advance 5s.
	m.OnTick(true, base.Add(5*time.Second))
	session, total := m.Values()
	if session < 5*time.Second || total < 5*time.Second {
		t.Fatalf("expected ~5s session & total; got session=%v total=%v", session, total)
	}

	// Stop at 5s.
	m.OnTick(false, base.Add(5*time.Second))
	session, total = m.Values()
	if session < 5*time.Second || total < 5*time.Second {
		t.Fatalf("after stop expected persisted 5s; got session=%v total=%v", session, total)
	}

	// Idle 2s (no change expected).
	m.OnTick(false, base.Add(7*time.Second))
	session2, total2 := m.Values()
	if session2 != session || total2 != total {
		t.Fatalf("idle tick should not change durations: before session=%v total=%v after session=%v total=%v", session, total, session2, total2)
	}

	// Second session at 10s lasting 3s.
	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	s3, t3 := m.Values()
	if s3 < 3*time.Second {
		t.Fatalf("second session expected >=3s, got %v", s3)
	}
	if t3 < 8*time.Second { // 5 + 3 ongoing
		t.Fatalf("total should include previous 5s + current >=3s (>=8s); got %v", t3)
	}

	// stop second session finalizing totals (13s)
	m.OnTick(false, base.Add(13*time.Second))
	sFinal, tFinal := m.Values()
	if sFinal < 3*time.Second || tFinal < 8*time.Second {
		t.Fatalf("final expected session >=3s total >=8s got session=%v total=%v", sFinal, tFinal)
	}
}

func TestSessionModel_Clicks(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnClick()
	m.OnClick()
	if s, tot := m.Clicks(); s != 2 || tot != 2 {
		t.Fatalf("expected 2/2 clicks, got %d/%d", s, tot)
	}
	m.OnTick(false, base.Add(time.Second))
	if s, _ := m.Clicks(); s != 2 {
		t.Fatalf("session clicks should persist after stop, got %d", s)
	}

	// A new session resets the session counter but not the total.
	m.OnTick(true, base.Add(2*time.Second))
	m.OnClick()
	if s, tot := m.Clicks(); s != 1 || tot != 3 {
		t.Fatalf("expected 1/3 clicks, got %d/%d", s, tot)
	}
}

func TestHitModel(t *testing.T) {
	m := NewHitModel()
	if _, ok := m.Last(); ok {
		t.Fatalf("new model should be empty")
	}
	m.Record(Hit{Target: 1, Score: 0.9})
	h, ok := m.Last()
	if !ok || h.Target != 1 || h.Score != 0.9 {
		t.Fatalf("unexpected hit %+v ok=%v", h, ok)
	}
	m.Reset()
	if _, ok := m.Last(); ok {
		t.Fatalf("reset should clear the hit")
	}
}
