package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/repository"
)

// OpenSQLite opens the embedded single-file store and runs migrations.
// SQLite serializes writers, which is the serialization point the cart and
// order invariants lean on.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, apperrors.Unavailable("failed to open sqlite store", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
