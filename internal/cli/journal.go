package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/config"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/migration"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/store"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/store/model"
	"github.com/osanchez42/Racktables-to-Device42-Migration/pkg/migrations"
)

// openJournal returns nil when the journal is disabled.
func openJournal(cfg *config.Config) (store.Store, error) {
	if cfg.Journal.Type == config.JournalNone {
		return nil, nil
	}

	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing journal: %w", err)
	}
	if err := migrations.MigrateStore(db, store.Dialect(cfg)); err != nil {
		return nil, err
	}
	return store.NewStore(db), nil
}

// recordRun writes the run and all of its outcomes in one transaction.
func recordRun(ctx context.Context, s store.Store, id uuid.UUID, dryRun bool, stages []string, summary migration.Summary) error {
	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		run := model.Run{
			ID:        id,
			StartedAt: summary.StartedAt,
			DryRun:    dryRun,
			Stages:    strings.Join(stages, ","),
		}
		if _, err := s.Run().Create(ctx, run); err != nil {
			return fmt.Errorf("failed to journal run %s: %w", id, err)
		}

		if err := s.Run().AddOutcomes(ctx, id, toModelOutcomes(summary.Outcomes)); err != nil {
			return fmt.Errorf("failed to journal outcomes of run %s: %w", id, err)
		}

		if _, err := s.Run().Finish(ctx, id, summary.FinishedAt); err != nil {
			return fmt.Errorf("failed to finish run %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.S().Named("journal").Infow("run journaled", "run", id, "outcomes", len(summary.Outcomes))
	return nil
}

func toModelOutcomes(outcomes []migration.Outcome) model.OutcomeList {
	list := make(model.OutcomeList, 0, len(outcomes))
	for _, o := range outcomes {
		list = append(list, model.Outcome{
			Stage:    o.Stage,
			Entity:   string(o.Entity),
			SourceID: o.SourceID,
			Name:     o.Name,
			Status:   string(o.Status),
			Reason:   o.Reason,
			RemoteID: o.RemoteID,
		})
	}
	return list
}
