package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tavola-dev/tavola/internal/cache"
	"github.com/tavola-dev/tavola/internal/config"
	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/store"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Store store.Store

// ConnectDatabase opens the configured store backend and, when REDIS_URL is
// set, puts the Redis cache in front of it.
func ConnectDatabase(cfg *config.Config) error {
	var (
		st  store.Store
		err error
	)

	switch cfg.StoreBackend {
	case "", "file":
		st, err = store.NewFileStore(cfg.DataDir)
	case "postgres", "postgresql", "mysql":
		st, err = connectSQL(cfg)
	case "mongo", "mongodb":
		st, err = store.NewMongoStore(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	default:
		return fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}

	if err != nil {
		return err
	}

	if cfg.RedisURL != "" {
		rdb, err := cache.ConnectRedis(&cache.Config{
			RedisURL:      cfg.RedisURL,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
		})

		if err != nil {
			log.Printf("Redis unavailable, running without cache: %v", err)
		} else {
			st = cache.NewCachedStore(st, rdb, cfg.CacheTTL)
		}
	}

	Store = st
	log.Printf("Using %s store", cfg.StoreBackend)

	return nil
}

func connectSQL(cfg *config.Config) (store.Store, error) {
	sqlDB, driverName, err := store.OpenSQL(&store.SQLConfig{
		Type:     cfg.StoreBackend,
		URL:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBName,
		Username: cfg.DBUser,
		Password: cfg.DBPassword,
		SSLMode:  cfg.DBSSLMode,
	})

	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector(driverName, sqlDB), &gorm.Config{})

	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := MigrateDatabase(gdb); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return store.NewGormStore(gdb), nil
}

func dialector(driverName string, conn *sql.DB) gorm.Dialector {
	if driverName == "mysql" {
		return mysql.New(mysql.Config{Conn: conn})
	}

	return postgres.New(postgres.Config{Conn: conn})
}

func MigrateDatabase(gdb *gorm.DB) error {
	models := []interface{}{
		&models.Collection{},
	}

	migrator := gdb.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := gdb.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
