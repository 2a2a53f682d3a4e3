package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/project-manager-api/internal/config"
	"github.com/project-manager-api/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"

	connectAttempts = 30
)

// GormConfig возвращает общие настройки GORM для всех драйверов
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}
}

// Connect подключается к PostgreSQL, повторяя попытки, пока БД не станет доступна
func Connect(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil && sqlDB.Ping() == nil {
				return db, nil
			}
		}
		logger.Debug("database is not ready yet", slog.Int("attempt", attempt))
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
}

// Open подключается к БД выбранного драйвера и применяет миграции
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	switch cfg.Driver {
	case DialectPostgres:
		db, err := Connect(cfg, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := Migrate(sqlDB, DialectPostgres); err != nil {
			return nil, err
		}
		return db, nil
	case "sqlite", DialectSQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite открывает SQLite-базу, включает внешние ключи и применяет миграции.
// Используется для локального запуска и в тестах (dsn "file::memory:").
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// in-memory база живёт только в рамках одного соединения
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := Migrate(sqlDB, DialectSQLite); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate применяет встроенные миграции для указанного диалекта
func Migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
