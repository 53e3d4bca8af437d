package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vedixlab/vedixlab-backend/internal/core/audit"
	"github.com/vedixlab/vedixlab-backend/internal/core/auth"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
)

const defaultSQLitePath = "vedixlab.db"

// DB wraps both GORM and sql.DB; cmd/migrate and the pool settings use the latter.
type DB struct {
	*sql.DB
	GORM    *gorm.DB
	Dialect string
}

// NewDB opens Postgres for postgres:// URLs and a local SQLite file otherwise.
func NewDB(connStr string, verbose bool) (*DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(level)}

	var (
		dialector gorm.Dialector
		dialect   string
	)
	if isPostgresURL(connStr) {
		dialector = postgres.Open(connStr)
		dialect = "postgres"
	} else {
		path := connStr
		if path == "" {
			path = defaultSQLitePath
		}
		dialector = sqlite.Open(path)
		dialect = "sqlite"
	}

	gormDB, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if dialect == "postgres" {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("dialect", dialect).Msg("database connected")
	return &DB{DB: sqlDB, GORM: gormDB, Dialect: dialect}, nil
}

// NewMemoryDB opens a migrated in-memory SQLite database.
func NewMemoryDB() (*DB, error) {
	db, err := NewDB(":memory:", false)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db.GORM); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates every table the API persists.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.PricingPlan{},
		&models.ServiceOffering{},
		&models.ContentSection{},
		&models.Lead{},
		&auth.Admin{},
		&audit.Entry{},
	); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	log.Info().Msg("closing database connection")
	return db.DB.Close()
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}
