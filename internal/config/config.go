package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Firebase
	FirebaseProjectID string
	FirebaseCredJSON  string

	// Auth
	ValidatorType string // "jwk" or "firebase"
	JWTJWKSURL    string

	// Database (detection history)
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime int // in minutes
	DBConnMaxLifetime int // in minutes

	// Service catalog
	CatalogOverridesPath string // optional YAML file merged over the built-in table

	// Subscription sync (fire-and-forget Firestore mirror)
	SyncWorkerPoolSize int
	SyncBufferSize     int
	SyncTimeoutSeconds int

	// NATS event publishing (disabled when empty)
	NatsURL string

	// Push notifications
	PushNotificationsEnabled bool

	// Renewal reminders
	RemindersEnabled  bool
	RemindersCron     string
	ReminderDaysAhead int

	// History
	HistoryEnabled bool

	// CORS
	CORSAllowedOrigins string

	// Server
	ServerShutdownTimeoutSeconds int

	// Logging
	LogLevel  string
	LogFormat string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		// Firebase
		FirebaseProjectID: getEnvOrDefault("FIREBASE_PROJECT_ID", ""),
		FirebaseCredJSON:  getEnvOrDefault("FIREBASE_CRED_JSON", ""),

		// Auth
		ValidatorType: getEnvOrDefault("VALIDATOR_TYPE", "firebase"),
		JWTJWKSURL:    getEnvOrDefault("JWT_JWKS_URL", ""),

		// Database
		DatabaseURL:       getEnvOrDefault("DATABASE_URL", "postgres://localhost/tiyin?sslmode=disable"),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 15),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdleTime: getEnvAsInt("DB_CONN_MAX_IDLE_TIME_MINUTES", 1),
		DBConnMaxLifetime: getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 30),

		// Service catalog
		CatalogOverridesPath: getEnvOrDefault("CATALOG_OVERRIDES_PATH", ""),

		// Subscription sync
		SyncWorkerPoolSize: getEnvAsInt("SYNC_WORKER_POOL_SIZE", 4),
		SyncBufferSize:     getEnvAsInt("SYNC_BUFFER_SIZE", 1000),
		SyncTimeoutSeconds: getEnvAsInt("SYNC_TIMEOUT_SECONDS", 30),

		// NATS
		NatsURL: getEnvOrDefault("NATS_URL", ""),

		// Push notifications
		PushNotificationsEnabled: getEnvOrDefault("PUSH_NOTIFICATIONS_ENABLED", "true") == "true",

		// Renewal reminders
		RemindersEnabled:  getEnvOrDefault("REMINDERS_ENABLED", "true") == "true",
		RemindersCron:     getEnvOrDefault("REMINDERS_CRON", "0 9 * * *"),
		ReminderDaysAhead: getEnvAsInt("REMINDER_DAYS_AHEAD", 3),

		// History
		HistoryEnabled: getEnvOrDefault("HISTORY_ENABLED", "true") == "true",

		// CORS
		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),

		// Server
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}
