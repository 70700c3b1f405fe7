package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnhub/config"
	"learnhub/logger"
	"learnhub/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectAttempts   = 5
	connectBaseDelay  = time.Second
	connectMaxBackoff = 10 * time.Second
)

// DSN builds the PostgreSQL connection string, preferring DATABASE_URL.
func DSN(cfg *config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
}

// ConnectDb opens PostgreSQL, retrying with exponential backoff, and runs
// migrations.
func ConnectDb(log *logger.Logger) (*gorm.DB, error) {
	dsn := DSN(config.AppConfig)

	var (
		db  *gorm.DB
		err error
	)
	delay := connectBaseDelay
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = Open(postgres.Open(dsn), log)
		if err == nil {
			break
		}
		log.Warn("Database connection failed", "attempt", attempt, "error", err)
		if attempt == connectAttempts {
			return nil, fmt.Errorf("connect to postgres after %d attempts: %w", connectAttempts, err)
		}
		time.Sleep(delay)
		delay = Backoff(delay)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Connected to PostgreSQL")
	return db, nil
}

// Open connects with the given dialector and migrates the schema. gorm's
// warnings, errors and slow queries are written to log.
func Open(dialector gorm.Dialector, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Backoff doubles the delay, capped at connectMaxBackoff.
func Backoff(delay time.Duration) time.Duration {
	next := delay * 2
	if next > connectMaxBackoff {
		return connectMaxBackoff
	}
	return next
}

func newGormLogger(log *logger.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{log: log.With("component", "gorm")}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// gormWriter feeds gorm's printf-style output into zap. Everything gorm
// prints at Warn level or above is worth a warning.
type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Ping reports whether the database answers within the context deadline.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Section{},
		&models.Lesson{},
		&models.QuizQuestion{},
		&models.Enrollment{},
		&models.Progress{},
		&models.LessonCompletion{},
		&models.Certificate{},
		&models.Payment{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
