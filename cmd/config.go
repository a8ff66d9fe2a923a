package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisURL string
	DedupTTL time.Duration

	// AMQPURL selects the RabbitMQ notifier. PushURL selects the HTTP push
	// notifier when AMQPURL is empty. With neither, notifications are logged.
	AMQPURL   string
	AMQPQueue string
	PushURL   string
	PushToken string

	DispatchBatchSize int
	MaxTxAttempts     int
	TxRetryDelay      time.Duration
	LogLevel          string
}

// LoadConfig reads .env when present and then the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "waterdelivery"),
		DBSslMode:         getEnv("DB_SSLMODE", "disable"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DedupTTL:          getEnvAsDuration("DEDUP_TTL", 7*24*time.Hour),
		AMQPURL:           getEnv("AMQP_URL", ""),
		AMQPQueue:         getEnv("AMQP_QUEUE", "notifications"),
		PushURL:           getEnv("PUSH_URL", ""),
		PushToken:         getEnv("PUSH_TOKEN", ""),
		DispatchBatchSize: getEnvAsInt("DISPATCH_BATCH_SIZE", 50),
		MaxTxAttempts:     getEnvAsInt("MAX_TX_ATTEMPTS", 5),
		TxRetryDelay:      getEnvAsDuration("TX_RETRY_DELAY", 20*time.Millisecond),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// DSN is the postgres connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
