package store

import (
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/config"
)

// Dialect returns the goose dialect of the configured journal database.
func Dialect(cfg *config.Config) string {
	if cfg.Journal.Type == config.JournalPostgres {
		return "postgres"
	}
	return "sqlite3"
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dia gorm.Dialector

	if cfg.Journal.Type == config.JournalPostgres {
		dia = postgres.Open(cfg.Journal.DSN)
	} else {
		dia = sqlite.Open(cfg.Journal.DSN)
	}

	newLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,        // Don't include params in the SQL log
			Colorful:                  false,       // Disable color
		},
	)

	newDB, err := gorm.Open(dia, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to open journal: %v", err)
		return nil, err
	}

	sqlDB, err := newDB.DB()
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to configure connections: %v", err)
		return nil, err
	}
	if cfg.Journal.Type == config.JournalPostgres {
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(4)

		var version string
		if result := newDB.Raw("SELECT version()").Scan(&version); result.Error != nil {
			zap.S().Named("gorm").Infoln(result.Error.Error())
			return nil, result.Error
		}
		zap.S().Named("gorm").Infof("PostgreSQL information: '%s'", version)
	} else {
		// an in-memory database lives as long as its only connection
		sqlDB.SetMaxOpenConns(1)
	}

	return newDB, nil
}
