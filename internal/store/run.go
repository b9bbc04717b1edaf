package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/store/model"
)

const outcomeBatchSize = 200

type Run interface {
	List(ctx context.Context, filter *RunQueryFilter, opts *RunQueryOptions) (model.RunList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Run, error)
	Create(ctx context.Context, run model.Run) (*model.Run, error)
	AddOutcomes(ctx context.Context, id uuid.UUID, outcomes model.OutcomeList) error
	Finish(ctx context.Context, id uuid.UUID, finishedAt time.Time) (*model.Run, error)
	Outcomes(ctx context.Context, id uuid.UUID, filter *OutcomeQueryFilter) (model.OutcomeList, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RunStore struct {
	db *gorm.DB
}

// Make sure we conform to Run interface
var _ Run = (*RunStore)(nil)

func NewRunStore(db *gorm.DB) Run {
	return &RunStore{db: db}
}

func (r *RunStore) List(ctx context.Context, filter *RunQueryFilter, opts *RunQueryOptions) (model.RunList, error) {
	var runs model.RunList
	tx := r.getDB(ctx).Model(&runs)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

func (r *RunStore) Get(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	var run model.Run
	result := r.getDB(ctx).Preload("Outcomes", func(db *gorm.DB) *gorm.DB {
		return db.Order("outcomes.seq")
	}).First(&run, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &run, nil
}

// Create stores the run header. Outcomes are added with AddOutcomes.
func (r *RunStore) Create(ctx context.Context, run model.Run) (*model.Run, error) {
	run.Outcomes = nil
	result := r.getDB(ctx).Create(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &run, nil
}

// AddOutcomes increments the run counters and appends outcomes to the run,
// continuing its sequence.
func (r *RunStore) AddOutcomes(ctx context.Context, id uuid.UUID, outcomes model.OutcomeList) error {
	if len(outcomes) == 0 {
		return nil
	}
	db := r.getDB(ctx)

	var last struct{ Seq int }
	if err := db.Model(&model.Outcome{}).Select("COALESCE(MAX(seq), 0) AS seq").Where("run_id = ?", id).Scan(&last).Error; err != nil {
		return err
	}

	var success, skipped, failed int
	rows := make(model.OutcomeList, 0, len(outcomes))
	for i, o := range outcomes {
		o.RunID = id
		o.Seq = last.Seq + i + 1
		switch o.Status {
		case "success":
			success++
		case "skipped":
			skipped++
		case "failed":
			failed++
		}
		rows = append(rows, o)
	}

	result := db.Model(model.NewRunFromID(id)).Updates(map[string]any{
		"success": gorm.Expr("success + ?", success),
		"skipped": gorm.Expr("skipped + ?", skipped),
		"failed":  gorm.Expr("failed + ?", failed),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	if err := db.CreateInBatches(&rows, outcomeBatchSize).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

func (r *RunStore) Finish(ctx context.Context, id uuid.UUID, finishedAt time.Time) (*model.Run, error) {
	result := r.getDB(ctx).Model(model.NewRunFromID(id)).Update("finished_at", finishedAt)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *RunStore) Outcomes(ctx context.Context, id uuid.UUID, filter *OutcomeQueryFilter) (model.OutcomeList, error) {
	var outcomes model.OutcomeList
	tx := r.getDB(ctx).Model(&outcomes).Where("run_id = ?", id).Order("seq")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Find(&outcomes).Error; err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *RunStore) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.getDB(ctx)
	// sqlite ignores ON DELETE CASCADE unless foreign keys are enabled
	if err := db.Where("run_id = ?", id).Delete(&model.Outcome{}).Error; err != nil {
		return err
	}
	result := db.Delete(&model.Run{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (r *RunStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return r.db
}
