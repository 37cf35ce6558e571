package db

import (
	"fmt"
	"strings"

	"social-server/confs"
	"social-server/entities"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database, sizes the pool and runs migrations.
func Connect(cfg confs.DBConfig, log *zap.Logger) (*GormDatabase, error) {
	dialector, err := dialectorFor(cfg, log)
	if err != nil {
		return nil, err
	}

	database, err := Open(dialector, NewZapLogger(log, logger.Warn))
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	log.Info("database connection established", zap.String("driver", cfg.Driver))
	return database, nil
}

// Open connects with the given dialector and migrates the schema.
func Open(dialector gorm.Dialector, gormLogger logger.Interface) (*GormDatabase, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &GormDatabase{DB: db}, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}, &entities.Follow{}, &entities.Post{}, &entities.DirectMessage{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func dialectorFor(cfg confs.DBConfig, log *zap.Logger) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "social.db"
		}
		return sqlite.Open(dsn), nil
	case "mysql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("missing required database configuration: DB_DSN")
		}
		return mysql.Open(cfg.DSN), nil
	}

	dsn, err := postgresDSN(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.URL != "" {
		log.Info("connecting to postgres using DB_URL")
	} else {
		log.Info("connecting to postgres using individual parameters", zap.String("host", cfg.Host))
	}
	return postgres.Open(dsn), nil
}

func postgresDSN(cfg confs.DBConfig) (string, error) {
	if cfg.URL != "" {
		dsn := cfg.URL
		// Hosted databases require SSL unless the URL says otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn, nil
	}

	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode), nil
}
