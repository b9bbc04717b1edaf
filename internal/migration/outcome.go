package migration

import (
	"sort"
	"sync"
	"time"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/pkg/metrics"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the result of migrating one source record.
type Outcome struct {
	Stage    string
	Entity   d42.Entity
	SourceID int64
	Name     string
	Status   Status
	Reason   string
	RemoteID int64
}

// Counts holds the number of outcomes per status.
type Counts struct {
	Success int
	Skipped int
	Failed  int
}

func (c Counts) Total() int {
	return c.Success + c.Skipped + c.Failed
}

func (c *Counts) add(s Status) {
	switch s {
	case StatusSuccess:
		c.Success++
	case StatusSkipped:
		c.Skipped++
	case StatusFailed:
		c.Failed++
	}
}

// StageTiming is how long a stage ran.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Stages     []StageTiming
	Outcomes   []Outcome
}

func (s Summary) Totals() Counts {
	var c Counts
	for _, o := range s.Outcomes {
		c.add(o.Status)
	}
	return c
}

// ByEntity returns the counts per entity, sorted by entity name.
func (s Summary) ByEntity() []EntityCounts {
	index := map[d42.Entity]*Counts{}
	for _, o := range s.Outcomes {
		c, ok := index[o.Entity]
		if !ok {
			c = &Counts{}
			index[o.Entity] = c
		}
		c.add(o.Status)
	}

	out := make([]EntityCounts, 0, len(index))
	for e, c := range index {
		out = append(out, EntityCounts{Entity: e, Counts: *c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entity < out[j].Entity })
	return out
}

// Failed returns the failed outcomes in the order they happened.
func (s Summary) Failed() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

type EntityCounts struct {
	Entity d42.Entity
	Counts
}

// Tracker collects outcomes while stages run and keeps the upload counters
// in step.
type Tracker struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Add(o Outcome) {
	t.mu.Lock()
	t.outcomes = append(t.outcomes, o)
	t.mu.Unlock()

	metrics.IncreaseUploadsTotalMetric(string(o.Entity), string(o.Status))
}

func (t *Tracker) Outcomes() []Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Outcome(nil), t.outcomes...)
}
