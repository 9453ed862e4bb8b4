package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Storage Storage
	// validated only for the postgres backend
	Postgres Postgres `validate:"-"`

	Lock  Lock
	Redis Redis

	Cache      Cache
	Commission Commission
	Retry      Retry
	Audit      Audit
	Tracing    Tracing
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,numeric"`
}

type Kafka struct {
	Enabled bool
	GroupID string   `validate:"required_if=Enabled true"`
	Brokers []string `validate:"required_if=Enabled true,dive,hostname_port"`

	CommandTopic string `validate:"required_if=Enabled true"`
	EventsTopic  string `validate:"required_if=Enabled true"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Storage struct {
	Backend string `validate:"required,oneof=postgres memory"`
	// SeedFile is a JSON list of orders created at startup.
	SeedFile string
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
	ConnectAttempts int           `validate:"gte=1"`
	Migrate         bool
}

type Lock struct {
	Backend string `validate:"required,oneof=local redis"`
}

type Redis struct {
	Addr     string `validate:"omitempty,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`

	LockExpiry time.Duration `validate:"gte=0"`
	LockTries  int           `validate:"gte=0"`
}

type Cache struct {
	Capacity int           `validate:"gte=0"`
	TTL      time.Duration `validate:"gte=0"`
}

type Commission struct {
	Rate decimal.Decimal
}

type Retry struct {
	MaxAttempts  int           `validate:"gte=1"`
	InitialDelay time.Duration `validate:"gt=0"`
	MaxDelay     time.Duration `validate:"gte=0"`
}

type Audit struct {
	Enabled bool
	// Schedule is a cron spec, e.g. "@every 10m" or "0 3 * * *".
	Schedule string `validate:"required_if=Enabled true"`
}

type Tracing struct {
	Enabled     bool
	Endpoint    string `validate:"required_if=Enabled true"`
	ServiceName string `validate:"required"`
	Insecure    bool
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			Enabled:      envBool("KAFKA_ENABLED", true),
			GroupID:      env("KAFKA_GROUP_ID", "order-ledger"),
			Brokers:      strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),
			CommandTopic: env("KAFKA_COMMAND_TOPIC", "order-status-commands"),
			EventsTopic:  env("KAFKA_EVENTS_TOPIC", "order-status-events"),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Storage: Storage{
			Backend:  env("STORAGE_BACKEND", "postgres"),
			SeedFile: env("SEED_FILE", ""),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "orders"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnectAttempts: envInt("POSTGRES_CONNECT_ATTEMPTS", 5),
			Migrate:         envBool("POSTGRES_MIGRATE", true),
		},

		Lock: Lock{
			Backend: env("LOCK_BACKEND", "local"),
		},

		Redis: Redis{
			Addr:       env("REDIS_ADDR", "localhost:6379"),
			Password:   env("REDIS_PASSWORD", ""),
			DB:         envInt("REDIS_DB", 0),
			LockExpiry: envDuration("REDIS_LOCK_EXPIRY", 8*time.Second),
			LockTries:  envInt("REDIS_LOCK_TRIES", 32),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},

		Commission: Commission{
			Rate: envDecimal("COMMISSION_RATE", decimal.RequireFromString("0.05")),
		},

		Retry: Retry{
			MaxAttempts:  envInt("RETRY_MAX_ATTEMPTS", 5),
			InitialDelay: envDuration("RETRY_INITIAL_DELAY", 50*time.Millisecond),
			MaxDelay:     envDuration("RETRY_MAX_DELAY", time.Second),
		},

		Audit: Audit{
			Enabled:  envBool("AUDIT_ENABLED", true),
			Schedule: env("AUDIT_SCHEDULE", "@every 10m"),
		},

		Tracing: Tracing{
			Enabled:     envBool("TRACING_ENABLED", false),
			Endpoint:    env("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: env("OTEL_SERVICE_NAME", "order-ledger"),
			Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Storage.Backend == "postgres" {
		if err := validate.Struct(c.Postgres); err != nil {
			return err
		}
	}
	if c.Lock.Backend == "redis" {
		if err := validate.Var(c.Redis.Addr, "required,hostname_port"); err != nil {
			return err
		}
	}
	return nil
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func envDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if value, ok := os.LookupEnv(key); ok {
		d, err := decimal.NewFromString(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
