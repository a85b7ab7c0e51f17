package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/chat/internal/config"
	"jobboard/chat/internal/models"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects GORM to PostgreSQL using the configured driver and pool limits.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	pgCfg := postgres.Config{DSN: cfg.DBDSN}
	if cfg.DBDriver == "postgres" {
		pgCfg.DriverName = "postgres"
	}

	db, err := gorm.Open(postgres.New(pgCfg), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// OpenRedis returns a connected client, or nil when REDIS_ADDR is not set.
func OpenRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return rdb, nil
}

// Migrate creates or updates the chat tables. The users table belongs to the
// identity service; it is created only when missing (a standalone deployment)
// and never altered, since rooms and messages reference it with cascading FKs.
func Migrate(db *gorm.DB) error {
	if !db.Migrator().HasTable(&models.User{}) {
		if err := db.AutoMigrate(&models.User{}); err != nil {
			return fmt.Errorf("create users table: %w", err)
		}
		log.Println("INFO: users table created")
	}
	if err := db.AutoMigrate(
		&models.Room{},
		&models.Message{},
	); err != nil {
		return fmt.Errorf("migrate chat tables: %w", err)
	}
	log.Println("INFO: chat tables migrated")
	return nil
}
