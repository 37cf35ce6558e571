package db

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

// OpenMemory opens a private in-memory sqlite database with the schema applied.
func OpenMemory() (*GormDatabase, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	database, err := Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB.DB()
	if err != nil {
		return nil, err
	}
	// every connection to a named memory database shares it; one keeps writes serialized
	sqlDB.SetMaxOpenConns(1)
	return database, nil
}
