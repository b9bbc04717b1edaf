package store

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/store/model"
)

// Store is the run journal.
type Store interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Run() Run
	Statistics(ctx context.Context) (model.JournalStats, error)
	Close() error
}

type DataStore struct {
	db  *gorm.DB
	run Run
	log logrus.FieldLogger
}

func NewStore(db *gorm.DB) Store {
	log := logrus.New().WithField("component", "journal")
	return &DataStore{
		db:  db,
		run: NewRunStore(db),
		log: log,
	}
}

func (s *DataStore) Run() Run {
	return s.run
}

func (s *DataStore) Statistics(ctx context.Context) (model.JournalStats, error) {
	stats := model.JournalStats{LatestByStatus: map[string]int{}}

	runs, err := s.Run().List(ctx, NewRunQueryFilter(), NewRunQueryOptions().WithSortOrder(SortByStartedTime))
	if err != nil {
		return stats, err
	}
	stats.TotalRuns = len(runs)

	for i := len(runs) - 1; i >= 0; i-- {
		if !runs[i].Finished() {
			continue
		}
		stats.LatestByStatus["success"] = runs[i].Success
		stats.LatestByStatus["skipped"] = runs[i].Skipped
		stats.LatestByStatus["failed"] = runs[i].Failed
		break
	}
	return stats, nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
