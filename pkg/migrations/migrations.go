package migrations

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// MigrateStore brings the journal schema up to date. dialect is the goose
// dialect of db ("sqlite3" or "postgres").
func MigrateStore(db *gorm.DB, dialect string) error {
	goose.SetLogger(&logger{})
	goose.SetBaseFS(sqlFiles)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("journal migrations: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := goose.Up(sqlDB, "sql"); err != nil {
		return fmt.Errorf("journal migrations: %w", err)
	}
	return nil
}

/*
logger implements goose.Logger interface

	type Logger interface {
		Fatalf(format string, v ...interface{})
		Printf(format string, v ...interface{})
	}
*/
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) { zap.S().Named("goose").Debugf(format, v...) }
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Named("goose").Fatalf(format, v...) }
