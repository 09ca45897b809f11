package extract

import (
	"sort"
	"sync"
	"time"
)

type run struct {
	at         time.Time
	durationMs int64
	entities   int
}

// StatsSnapshot aggregates the extraction runs inside the window.
type StatsSnapshot struct {
	Runs         int     `json:"runs"`
	MinMs        int64   `json:"min_ms"`
	MaxMs        int64   `json:"max_ms"`
	AvgMs        float64 `json:"avg_ms"`
	P50Ms        float64 `json:"p50_ms"`
	P95Ms        float64 `json:"p95_ms"`
	LastEntities int     `json:"last_entities"`
}

// Stats keeps a rolling window of extraction run latencies.
type Stats struct {
	mu     sync.Mutex
	runs   []run
	maxAge time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{maxAge: maxAge}
}

// Record adds one finished run.
func (s *Stats) Record(d time.Duration, entities int) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.runs = append(s.runs, run{at: now, durationMs: ms, entities: entities})
}

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.runs) == 0 {
		return StatsSnapshot{}
	}

	values := make([]int64, 0, len(s.runs))
	var sum int64
	for _, r := range s.runs {
		values = append(values, r.durationMs)
		sum += r.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Runs:         len(values),
		MinMs:        values[0],
		MaxMs:        values[len(values)-1],
		AvgMs:        float64(sum) / float64(len(values)),
		P50Ms:        percentile(values, 50),
		P95Ms:        percentile(values, 95),
		LastEntities: s.runs[len(s.runs)-1].entities,
	}
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := s.runs[:0]
	for _, r := range s.runs {
		if !r.at.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	s.runs = kept
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := float64(len(sorted)-1) * pct / 100
	lo := int(idx)
	if lo >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1])
	}
	w := idx - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[lo+1])-float64(sorted[lo]))*w
}
