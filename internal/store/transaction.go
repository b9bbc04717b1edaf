package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type txKey struct{}

// FromContext returns the journal transaction carried by ctx, or nil.
func FromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// WithinTransaction runs fn with a context whose journal writes share one
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise, including when fn panics.
func (s *DataStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if FromContext(ctx) != nil {
		return fmt.Errorf("journal transaction already open")
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("beginning journal transaction: %w", tx.Error)
	}
	log := s.log.WithField("tx", s.transactionID(tx))

	committed := false
	defer func() {
		if committed {
			return
		}
		if rerr := tx.Rollback().Error; rerr != nil {
			log.Errorf("rollback failed: %v", rerr)
			return
		}
		log.Debugf("rolled back")
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		log.Errorf("commit failed: %v", err)
		return fmt.Errorf("committing journal transaction: %w", err)
	}
	committed = true
	log.Debugf("committed")
	return nil
}

// transactionID is the postgres transaction id, for log correlation only.
// Other dialects report 0.
func (s *DataStore) transactionID(tx *gorm.DB) int64 {
	var txid struct{ ID int64 }
	if tx.Dialector.Name() == "postgres" {
		tx.Raw("select txid_current() as id").Scan(&txid)
	}
	return txid.ID
}
