package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

type SQLConfig struct {
	Type     string // "mysql", "postgres"
	URL      string // full DSN; overrides the fields below when set
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string // postgres only
	Timeout  int    // seconds
}

// OpenSQL opens and pings a database/sql connection for the configured
// driver. It returns the normalized driver name alongside the handle.
func OpenSQL(config *SQLConfig) (*sql.DB, string, error) {
	timeout := config.Timeout

	if timeout == 0 {
		timeout = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	dsn, err := config.dsn()

	if err != nil {
		return nil, "", err
	}

	// Use correct driver names for sql.Open
	driverName := config.Type
	if config.Type == "postgresql" {
		driverName = "postgres"
	}

	db, err := sql.Open(driverName, dsn)

	if err != nil {
		return nil, "", fmt.Errorf("failed to open a database connection: %v", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %v", err)
	}

	return db, driverName, nil
}

func (config *SQLConfig) dsn() (string, error) {
	switch config.Type {
	case "postgres", "postgresql":
		if config.URL != "" {
			return config.URL, nil
		}

		sslMode := config.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", config.Host, config.Port, config.Username, config.Password, config.Database, sslMode), nil
	case "mysql":
		if config.URL != "" {
			return config.URL, nil
		}

		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			config.Username, config.Password, config.Host, config.Port, config.Database), nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", config.Type)
	}
}
