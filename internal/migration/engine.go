package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/pkg/metrics"
)

// EntityStage marks outcomes that describe a whole stage rather than a
// single record.
const EntityStage d42.Entity = "stage"

// Stage is one step of the migration. A stage reads what it needs from the
// source, uploads it and records every record's outcome on the state.
type Stage interface {
	Name() string
	Run(ctx context.Context, s *State) error
}

// Engine runs stages in registration order.
type Engine struct {
	stages []Stage
}

func NewEngine() *Engine {
	return &Engine{
		stages: make([]Stage, 0),
	}
}

// Register appends a stage. It panics if a stage with the same Name() is
// already registered.
func (e *Engine) Register(s Stage) {
	for _, existing := range e.stages {
		if existing.Name() == s.Name() {
			panic(fmt.Sprintf("migration: stage %q already registered", s.Name()))
		}
	}
	e.stages = append(e.stages, s)
}

func (e *Engine) Stages() []string {
	names := make([]string, 0, len(e.stages))
	for _, s := range e.stages {
		names = append(names, s.Name())
	}
	return names
}

// Run executes every stage against the state. A stage that returns an error
// is recorded as a failed outcome and the next stage still runs; only a
// cancelled context stops the run.
func (e *Engine) Run(ctx context.Context, s *State) Summary {
	summary := Summary{StartedAt: time.Now()}

	for _, stage := range e.stages {
		if err := ctx.Err(); err != nil {
			s.tracker.Add(Outcome{
				Stage:  stage.Name(),
				Entity: EntityStage,
				Name:   stage.Name(),
				Status: StatusSkipped,
				Reason: fmt.Sprintf("run cancelled: %v", err),
			})
			continue
		}

		s.log.Infof("stage %s started", stage.Name())
		start := time.Now()
		err := stage.Run(ctx, s)
		elapsed := time.Since(start)

		metrics.ObserveStageDurationMetric(stage.Name(), elapsed.Seconds())
		summary.Stages = append(summary.Stages, StageTiming{Stage: stage.Name(), Duration: elapsed})

		if err != nil {
			s.log.Errorf("stage %s failed after %s: %v", stage.Name(), elapsed, err)
			s.tracker.Add(Outcome{
				Stage:  stage.Name(),
				Entity: EntityStage,
				Name:   stage.Name(),
				Status: StatusFailed,
				Reason: fmt.Sprintf("Error: %v", err),
			})
			continue
		}
		s.log.Infof("stage %s finished in %s", stage.Name(), elapsed)
	}

	summary.FinishedAt = time.Now()
	summary.Outcomes = s.tracker.Outcomes()
	return summary
}
