package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type RunQueryFilter BaseQuerier

func NewRunQueryFilter() *RunQueryFilter {
	return &RunQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *RunQueryFilter) ByID(ids []uuid.UUID) *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id IN ?", ids)
	})
	return qf
}

func (qf *RunQueryFilter) ByDryRun(dryRun bool) *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("dry_run = ?", dryRun)
	})
	return qf
}

// ByFinished keeps runs that reached the end of their pipeline.
func (qf *RunQueryFilter) ByFinished() *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("finished_at IS NOT NULL")
	})
	return qf
}

type RunQueryOptions BaseQuerier

func NewRunQueryOptions() *RunQueryOptions {
	return &RunQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *RunQueryOptions) WithSortOrder(sort SortOrder) *RunQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByID:
			return tx.Order("id")
		case SortByStartedTime:
			return tx.Order("started_at")
		default:
			return tx
		}
	})
	return o
}

func (o *RunQueryOptions) WithLimit(limit int) *RunQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

type OutcomeQueryFilter BaseQuerier

func NewOutcomeQueryFilter() *OutcomeQueryFilter {
	return &OutcomeQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *OutcomeQueryFilter) ByStatus(status string) *OutcomeQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

func (qf *OutcomeQueryFilter) ByStage(stage string) *OutcomeQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("stage = ?", stage)
	})
	return qf
}

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByID
	SortByStartedTime
)
