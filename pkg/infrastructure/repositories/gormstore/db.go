package gormstore

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to a postgres, mysql or sqlite database. The sqlite dsn is a
// file path, or ":memory:".
func Open(driver, dsn string, logger logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// AutoMigrate creates or updates every table of the store
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(allModels()...)
}

func allModels() []interface{} {
	return []interface{}{
		// Master data
		&UnitOfMeasureModel{},
		&CurrencyModel{},
		&CompanyModel{},
		&LocationModel{},
		&WarehouseModel{},
		&ProductModel{},

		// BOMs
		&BOMModel{},
		&BOMEntryModel{},

		// Productions
		&ProductionModel{},
		&MoveModel{},

		// Settings
		&ConfigurationModel{},
	}
}
