package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	HTTPAddr     string
	TaxRate      float64
	ServiceRate  float64
	MenuCacheTTL time.Duration
	RedisAddr    string
	KafkaBroker  string
	KafkaTopic   string
	QRBaseURL    string
}

func Load() Config {
	return Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		TaxRate:      getEnvFloat("TAX_RATE", 0.08),
		ServiceRate:  getEnvFloat("SERVICE_RATE", 0.10),
		MenuCacheTTL: getEnvDuration("MENU_CACHE_TTL", 10*time.Minute),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBroker:  os.Getenv("KAFKA_BROKER"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "venue-events"),
		QRBaseURL:    getEnv("QR_BASE_URL", "http://localhost:8080"),
	}
}

// MustInitRedis connects to Redis when an address is configured and
// returns nil otherwise; the menu cache is optional.
func MustInitRedis(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	return client
}

// NewKafkaWriter returns nil when no broker is configured; event
// publishing is optional.
func NewKafkaWriter(cfg Config) *kafka.Writer {
	if cfg.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
