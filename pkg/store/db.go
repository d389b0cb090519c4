// Package store provides the two persistence backends: a local
// relational store reached through GORM, and the remote REST table-store.
package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clavisnova/submissions/pkg/model"
)

// Open connects to the relational engine selected by dbType (sqlite,
// postgres, or mysql) and creates or updates the four entity tables.
func Open(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbType {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q (expected sqlite, postgres, or mysql)", dbType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbType, err)
	}

	if err := db.AutoMigrate(
		&model.Registration{},
		&model.Requirements{},
		&model.Contact{},
		&model.SystemLog{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate submission tables: %w", err)
	}

	return db, nil
}
