package target

import (
	"sync"
	"time"
)

// DefaultSlots is the number of target slots a fresh set carries.
const DefaultSlots = 2

// DefaultCooldownText is the global cooldown shown for a fresh set.
const DefaultCooldownText = "1.0"

// Set is a fixed number of target slots plus the global cooldown shared by
// all of them.
type Set struct {
	targets []*Target

	mu       sync.RWMutex
	cooldown string
}

// NewSet returns n empty slots (DefaultSlots when n < 1).
func NewSet(n int) *Set {
	if n < 1 {
		n = DefaultSlots
	}
	s := &Set{targets: make([]*Target, n), cooldown: DefaultCooldownText}
	for i := range s.targets {
		s.targets[i] = New()
	}
	return s
}

// All returns the slots in index order. The slice must not be modified.
func (s *Set) All() []*Target { return s.targets }

func (s *Set) Len() int { return len(s.targets) }

// At returns slot i, or nil when out of range.
func (s *Set) At(i int) *Target {
	if i < 0 || i >= len(s.targets) {
		return nil
	}
	return s.targets[i]
}

func (s *Set) CooldownText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cooldown
}

func (s *Set) SetCooldownText(v string) {
	s.mu.Lock()
	s.cooldown = v
	s.mu.Unlock()
}

// Cooldown parses the global cooldown text.
func (s *Set) Cooldown() (time.Duration, error) { return ParseCooldown(s.CooldownText()) }

// Pair names two slot indexes.
type Pair struct{ A, B int }

// SimilarPairs returns pairs of usable targets whose reference fingerprints
// are within maxDist bits of each other. Such targets will usually fire on
// the same on-screen element.
func (s *Set) SimilarPairs(maxDist int) []Pair {
	var out []Pair
	for i := 0; i < len(s.targets); i++ {
		a := s.targets[i]
		if !a.Usable() || a.Fingerprint() == nil {
			continue
		}
		for j := i + 1; j < len(s.targets); j++ {
			b := s.targets[j]
			if !b.Usable() || b.Fingerprint() == nil {
				continue
			}
			d, err := a.Fingerprint().Distance(b.Fingerprint())
			if err == nil && d <= maxDist {
				out = append(out, Pair{A: i, B: j})
			}
		}
	}
	return out
}
