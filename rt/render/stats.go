package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumen3d/lumen/rt/core"
)

// Stats collects per-frame timings and ray counters. Timing scopes are used
// from the coordinating goroutine; ray counters are atomic and shared by the
// render workers.
type Stats struct {
	mu      sync.Mutex
	scopes  map[string]time.Duration
	started map[string]time.Time
	order   []string

	primaryRays   atomic.Uint64
	shadowRays    atomic.Uint64
	reflectedRays atomic.Uint64

	objectHits sync.Map // ObjectID -> *atomic.Uint64
}

func NewStats() *Stats {
	return &Stats{
		scopes:  make(map[string]time.Duration),
		started: make(map[string]time.Time),
	}
}

func (s *Stats) BeginScope(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started[name] = time.Now()
	for _, n := range s.order {
		if n == name {
			return
		}
	}
	s.order = append(s.order, name)
}

func (s *Stats) EndScope(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if start, ok := s.started[name]; ok {
		s.scopes[name] += time.Since(start)
	}
}

func (s *Stats) CountRay(kind core.RayKind) {
	switch kind {
	case core.PrimaryRay:
		s.primaryRays.Add(1)
	case core.ShadowRay:
		s.shadowRays.Add(1)
	case core.ReflectedRay:
		s.reflectedRays.Add(1)
	}
}

func (s *Stats) RayCount(kind core.RayKind) uint64 {
	switch kind {
	case core.PrimaryRay:
		return s.primaryRays.Load()
	case core.ShadowRay:
		return s.shadowRays.Load()
	case core.ReflectedRay:
		return s.reflectedRays.Load()
	}
	return 0
}

func (s *Stats) TotalRays() uint64 {
	return s.primaryRays.Load() + s.shadowRays.Load() + s.reflectedRays.Load()
}

func (s *Stats) CountHit(id ObjectID) {
	c, _ := s.objectHits.LoadOrStore(id, new(atomic.Uint64))
	c.(*atomic.Uint64).Add(1)
}

func (s *Stats) HitCount(id ObjectID) uint64 {
	if c, ok := s.objectHits.Load(id); ok {
		return c.(*atomic.Uint64).Load()
	}
	return 0
}

func (s *Stats) Reset() {
	s.mu.Lock()
	for k := range s.scopes {
		s.scopes[k] = 0
	}
	s.mu.Unlock()
	s.primaryRays.Store(0)
	s.shadowRays.Store(0)
	s.reflectedRays.Store(0)
	s.objectHits.Range(func(k, _ any) bool {
		s.objectHits.Delete(k)
		return true
	})
}

// Report renders a human-readable summary, timings first in scope order,
// then counters.
func (s *Stats) Report() string {
	var sb strings.Builder

	sb.WriteString("Timings (CPU):\n")
	s.mu.Lock()
	for _, name := range s.order {
		ms := float64(s.scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-12s: %.2f ms\n", name, ms))
	}
	s.mu.Unlock()

	sb.WriteString("\nRays:\n")
	sb.WriteString(fmt.Sprintf("  %-12s: %d\n", "primary", s.primaryRays.Load()))
	sb.WriteString(fmt.Sprintf("  %-12s: %d\n", "shadow", s.shadowRays.Load()))
	sb.WriteString(fmt.Sprintf("  %-12s: %d\n", "reflected", s.reflectedRays.Load()))

	type hitRow struct {
		id   string
		hits uint64
	}
	var rows []hitRow
	s.objectHits.Range(func(k, v any) bool {
		rows = append(rows, hitRow{id: string(k.(ObjectID)), hits: v.(*atomic.Uint64).Load()})
		return true
	})
	if len(rows) > 0 {
		sort.Slice(rows, func(i, j int) bool { return rows[i].hits > rows[j].hits })
		sb.WriteString("\nHits per object:\n")
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", r.id, r.hits))
		}
	}

	return sb.String()
}
