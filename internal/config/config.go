package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DataDir   string
	UploadDir string

	// StoreBackend is one of "file", "postgres", "mysql", "mongo".
	StoreBackend string

	// DatabaseURL is a full DSN. When set it takes precedence over the DB_*
	// connection parts.
	DatabaseURL string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MongoURI      string
	MongoDatabase string

	RedisURL      string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	DiscordWebhook string
	SlackWebhook   string

	// StrictOrderStatus limits order statuses to the known set and its
	// transition table. It is on unless ORDER_STATUS_STRICT=false, which
	// accepts any non-empty status string.
	StrictOrderStatus bool
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment only")
	}

	backend := strings.ToLower(getEnv("STORE_BACKEND", "file"))

	defaultDBPort := 5432
	if backend == "mysql" {
		defaultDBPort = 3306
	}

	return &Config{
		Port:              getEnv("PORT", "3000"),
		DataDir:           getEnv("DATA_DIR", "data"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		StoreBackend:      backend,
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnvAsInt("DB_PORT", defaultDBPort),
		DBUser:            getEnv("DB_USER", "tavola"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "tavola"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "tavola"),
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		CacheTTL:          time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		DiscordWebhook:    getEnv("DISCORD_WEBHOOK_URL", ""),
		SlackWebhook:      getEnv("SLACK_WEBHOOK_URL", ""),
		StrictOrderStatus: getEnvAsBool("ORDER_STATUS_STRICT", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
