package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run is one execution of the migration.
type Run struct {
	ID         uuid.UUID `gorm:"primaryKey;type:TEXT"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt *time.Time
	DryRun     bool
	Stages     string
	Success    int
	Skipped    int
	Failed     int
	Outcomes   []Outcome `gorm:"foreignKey:RunID;references:ID;constraint:OnDelete:CASCADE;"`
}

type RunList []Run

func (r Run) String() string {
	val, _ := json.Marshal(r)
	return string(val)
}

func NewRunFromID(id uuid.UUID) *Run {
	return &Run{ID: id}
}

func (r Run) Finished() bool {
	return r.FinishedAt != nil
}

// Outcome is the journal row of one migrated record. Seq orders the outcomes
// of a run.
type Outcome struct {
	RunID    uuid.UUID `gorm:"primaryKey;type:TEXT"`
	Seq      int       `gorm:"primaryKey;autoIncrement:false"`
	Stage    string
	Entity   string
	SourceID int64
	Name     string
	Status   string
	Reason   string
	RemoteID int64
}

type OutcomeList []Outcome

// JournalStats summarizes the journal.
type JournalStats struct {
	TotalRuns int
	// outcomes of the latest finished run by status
	LatestByStatus map[string]int
}
