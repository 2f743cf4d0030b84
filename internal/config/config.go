// Package config loads service configuration from environment variables,
// prefixed with BOOKINGS_. Every key has a development-friendly default so
// the service starts locally with no environment at all.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the config as a GORM postgres DSN.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds Kafka broker settings.
type KafkaConfig struct {
	Brokers []string
}

// UpstreamConfig holds connection settings for a sibling HTTP service.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BookingConfig holds booking policy knobs.
type BookingConfig struct {
	SlotsTTL        time.Duration
	MinDuration     time.Duration
	RejectPastStart bool
	LockTTL         time.Duration
	LockRetries     int
	LockRetryDelay  time.Duration
}

// ServiceConfig holds all configuration for the bookings service.
type ServiceConfig struct {
	Port     string
	AppEnv   string
	DB       DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Venues   UpstreamConfig
	Payments UpstreamConfig
	Booking  BookingConfig
}

// IsDevelopment reports whether the service runs in development mode.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads configuration from BOOKINGS_-prefixed environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8084")
	v.SetDefault("app_env", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "bookings")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", "localhost:9092")

	v.SetDefault("venues.base_url", "http://localhost:8082")
	v.SetDefault("venues.timeout", "5s")
	v.SetDefault("payments.base_url", "http://localhost:8083")
	v.SetDefault("payments.timeout", "5s")

	v.SetDefault("booking.slots_ttl", "60s")
	v.SetDefault("booking.min_duration", "1h")
	v.SetDefault("booking.reject_past_start", true)
	v.SetDefault("booking.lock_ttl", "10s")
	v.SetDefault("booking.lock_retries", 3)
	v.SetDefault("booking.lock_retry_delay", "100ms")

	cfg := &ServiceConfig{
		Port:   v.GetString("port"),
		AppEnv: v.GetString("app_env"),
		DB: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(v.GetString("kafka.brokers"), ","),
		},
		Venues: UpstreamConfig{
			BaseURL: v.GetString("venues.base_url"),
			Timeout: v.GetDuration("venues.timeout"),
		},
		Payments: UpstreamConfig{
			BaseURL: v.GetString("payments.base_url"),
			Timeout: v.GetDuration("payments.timeout"),
		},
		Booking: BookingConfig{
			SlotsTTL:        v.GetDuration("booking.slots_ttl"),
			MinDuration:     v.GetDuration("booking.min_duration"),
			RejectPastStart: v.GetBool("booking.reject_past_start"),
			LockTTL:         v.GetDuration("booking.lock_ttl"),
			LockRetries:     v.GetInt("booking.lock_retries"),
			LockRetryDelay:  v.GetDuration("booking.lock_retry_delay"),
		},
	}

	if cfg.Booking.MinDuration <= 0 {
		return nil, fmt.Errorf("booking.min_duration must be positive")
	}
	return cfg, nil
}
