// Package repositories is the data access layer. All persistence goes
// through the interfaces defined here; services never touch gorm
// directly.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"baartal/internal/config"
	"baartal/internal/models"
	"baartal/internal/repositories/cache"
)

// DB is the global database handle used by the repository constructors.
var DB *gorm.DB

// Cache is the global cache service, nil when Redis is disabled.
var Cache *cache.Service

type poolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

var defaultPool = poolConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: 30 * time.Minute,
}

// InitDB connects to Postgres, creates the database when missing,
// configures pooling and runs migrations. It also brings up the Redis
// cache service.
func InitDB() error {
	dbName := config.GetEnv("DB_NAME", "baartal")
	if err := ensureDatabase(dbName); err != nil {
		return fmt.Errorf("ensure database: %w", err)
	}

	db, err := gorm.Open(postgres.Open(dsnFor(dbName)), &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(defaultPool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(defaultPool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(defaultPool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(defaultPool.ConnMaxIdleTime)

	DB = db

	if config.GetBoolEnv("DB_AUTO_MIGRATE", true) {
		if err := migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	Cache = cache.NewService(cache.NewRedisClient(redisCfg), 24*time.Hour)

	return nil
}

// HealthCheck pings the database.
func HealthCheck(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Bundle{},
		&models.Business{},
		&models.CustomerProfile{},
		&models.BCoinTransaction{},
		&models.QRCode{},
		&models.Rating{},
		&models.Notification{},
	)
}

// ensureDatabase creates the target database if it does not exist yet,
// connecting through the maintenance database. First-run convenience
// for local development.
func ensureDatabase(dbName string) error {
	adminDB, err := sql.Open("postgres", dsnFor("postgres"))
	if err != nil {
		return err
	}
	defer adminDB.Close()

	var exists bool
	err = adminDB.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = adminDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}

func dsnFor(dbName string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_USER", "postgres"),
		config.GetEnv("DB_PASSWORD", "postgres"),
		dbName,
		config.GetEnv("DB_PORT", "5432"),
		config.GetEnv("DB_SSLMODE", "disable"),
	)
}

func newGormLogger() gormlogger.Interface {
	level := gormlogger.Warn
	if !config.IsProduction() {
		level = gormlogger.Info
	}
	return gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !config.IsProduction(),
		},
	)
}
