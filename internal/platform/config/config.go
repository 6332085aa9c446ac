package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read from the environment so main stays lean.
type Config struct {
	Addr                  string
	Environment           string
	LogLevel              string
	LogFormat             string
	Database              DatabaseConfig
	Redis                 RedisConfig
	Kafka                 KafkaConfig
	FinalScoreCacheTTL    time.Duration
	AuditAsyncBuffer      int
	DeadlineCheckInterval time.Duration
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	RunMigrations   bool
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KafkaConfig struct {
	Brokers            []string
	AuditTopic         string
	Partitions         int
	ReplicationFactor  int
	OutboxPollInterval time.Duration
}

func FromEnv() Config {
	return Config{
		Addr:        getEnv("CALIBRA_ADDR", ":8080"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Database: DatabaseConfig{
			Driver:          getEnv("DATABASE_DRIVER", "pgx"),
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			RunMigrations:   getEnvBool("RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:            splitList(getEnv("KAFKA_BROKERS", "")),
			AuditTopic:         getEnv("AUDIT_TOPIC", "calibra.audit"),
			Partitions:         getEnvInt("AUDIT_TOPIC_PARTITIONS", 3),
			ReplicationFactor:  getEnvInt("AUDIT_TOPIC_REPLICATION", 1),
			OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", time.Second),
		},
		FinalScoreCacheTTL:    getEnvDuration("FINAL_SCORE_CACHE_TTL", 5*time.Minute),
		AuditAsyncBuffer:      getEnvInt("AUDIT_ASYNC_BUFFER", 0),
		DeadlineCheckInterval: getEnvDuration("DEADLINE_CHECK_INTERVAL", time.Hour),
	}
}

func (c Config) Validate() error {
	if len(c.Kafka.Brokers) > 0 && strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("KAFKA_BROKERS requires DATABASE_URL: audit events are relayed through the postgres outbox")
	}
	if c.Environment == "production" && strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	if c.Redis.URL != "" && c.Redis.PoolSize <= 0 {
		return fmt.Errorf("REDIS_POOL_SIZE must be positive")
	}
	if c.FinalScoreCacheTTL <= 0 {
		return fmt.Errorf("FINAL_SCORE_CACHE_TTL must be positive")
	}
	if c.AuditAsyncBuffer < 0 {
		return fmt.Errorf("AUDIT_ASYNC_BUFFER cannot be negative")
	}
	if c.DeadlineCheckInterval <= 0 {
		return fmt.Errorf("DEADLINE_CHECK_INTERVAL must be positive")
	}
	switch c.Database.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be pgx or postgres")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
