package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	ServerPort   string
	ServerHost   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Datasets
	DataDir         string
	SubjectListCap  int
	LabCatalogPath  string
	SyntheticSeed   int64
	DefaultTimeSpan int

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	ArchiveEnabled   bool

	// Redis
	SessionStore  string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// Kafka
	KafkaBrokers   []string
	KafkaLoadTopic string
	EventsEnabled  bool
}

func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ServerHost:   getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),

		DataDir:         getEnv("DATA_DIR", "data/datasets"),
		SubjectListCap:  getIntEnv("SUBJECT_LIST_CAP", 0),
		LabCatalogPath:  getEnv("LAB_CATALOG_PATH", ""),
		SyntheticSeed:   int64(getIntEnv("SYNTHETIC_SEED", 0)),
		DefaultTimeSpan: getIntEnv("DEFAULT_TIME_RANGE_DAYS", 30),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "healthbridge"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "healthbridge123"),
		PostgresDB:       getEnv("POSTGRES_DB", "healthbridge"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		ArchiveEnabled:   getBoolEnv("ARCHIVE_ENABLED", false),

		SessionStore:  getEnv("SESSION_STORE", "memory"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),

		KafkaBrokers:   getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaLoadTopic: getEnv("KAFKA_LOAD_TOPIC", "healthbridge.session.load"),
		EventsEnabled:  getBoolEnv("EVENTS_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return []string{value}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
