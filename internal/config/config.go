package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	Environment          string
	AllowedOrigins       []string
	FrontendURL          string
	DatabaseURL          string
	DBDriver             string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	RedisDB              int
	KafkaBrokers         []string
	KafkaTopic           string
	KafkaGroupID         string
	JWTSecret            string
	GameTokenTTL         time.Duration
	BoardColumns         int
	BoardRows            int
	BoardMaxColumns      int
	BoardMaxRows         int
	BotMoveDelay         time.Duration
	SnapshotTTL          time.Duration
	ArenaMaxGames        int
	ArenaWorkers         int
	CleanupInterval      time.Duration
	MatchRetentionDays   int
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range GetEnvAsList("ALLOWED_ORIGINS", nil) {
		if origin != frontendURL {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}

	// Database Config
	// Append simple_protocol for PgBouncer compatibility (pgx driver)
	dbDriver := GetEnv("DB_DRIVER", "pgx")
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	if dbURL != "" && dbDriver == "pgx" {
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:                 port,
		Environment:          environment,
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		DatabaseURL:          dbURL,
		DBDriver:             dbDriver,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		RedisDB:              GetEnvAsInt("REDIS_DB", 0),
		KafkaBrokers:         GetEnvAsList("KAFKA_BROKERS", nil),
		KafkaTopic:           GetEnv("KAFKA_TOPIC", "connect4.matches"),
		KafkaGroupID:         GetEnv("KAFKA_GROUP_ID", "connect4-analytics"),
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		GameTokenTTL:         time.Duration(GetEnvAsInt("GAME_TOKEN_TTL_MINUTES", 120)) * time.Minute,
		BoardColumns:         GetEnvAsInt("BOARD_COLUMNS", 7),
		BoardRows:            GetEnvAsInt("BOARD_ROWS", 6),
		BoardMaxColumns:      GetEnvAsInt("BOARD_MAX_COLUMNS", 20),
		BoardMaxRows:         GetEnvAsInt("BOARD_MAX_ROWS", 20),
		BotMoveDelay:         time.Duration(GetEnvAsInt("BOT_MOVE_DELAY_MS", 500)) * time.Millisecond,
		SnapshotTTL:          time.Duration(GetEnvAsInt("SNAPSHOT_TTL_MINUTES", 60)) * time.Minute,
		ArenaMaxGames:        GetEnvAsInt("ARENA_MAX_GAMES", 500),
		ArenaWorkers:         GetEnvAsInt("ARENA_WORKERS", 4),
		CleanupInterval:      time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
		MatchRetentionDays:   GetEnvAsInt("MATCH_RETENTION_DAYS", 30),
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsList splits a comma separated value, dropping blanks.
func GetEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	out := []string{}
	for _, item := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
