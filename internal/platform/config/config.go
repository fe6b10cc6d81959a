package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendLive   = "live"
)

// Config is the complete deployment-provided configuration. It is read from
// the environment only.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// StorageBackend selects in-process adapters ("memory") or the real
	// Postgres/Mongo/Redis/Kafka backends ("live").
	StorageBackend string

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type PostgresConfig struct {
	// URL, when set, takes precedence over the discrete connection fields.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Database string

	MaxConns int32
	Migrate  bool
}

// DSN returns URL or a postgres:// URL assembled from the discrete fields.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else if c.User != "" {
		u.User = url.User(c.User)
	}
	return u.String()
}

type MongoConfig struct {
	URI            string
	Database       string
	TripCollection string
}

type RedisConfig struct {
	URL string
}

type KafkaConfig struct {
	Brokers   []string
	TripTopic string
	ClientID  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("storage_backend", BackendMemory)

	v.SetDefault("database_url", "")
	v.SetDefault("pghost", "localhost")
	v.SetDefault("pgport", "5432")
	v.SetDefault("pguser", "postgres")
	v.SetDefault("pgpassword", "")
	v.SetDefault("pgdatabase", "postgres")
	v.SetDefault("pg_max_conns", 0)
	v.SetDefault("db_migrate", true)

	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "travel")
	v.SetDefault("mongo_trips_collection", "trips")

	v.SetDefault("redis_url", "redis://localhost:6379/0")

	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_trips_topic", "trips")
	v.SetDefault("kafka_client_id", "trip-gateway")
}

// LoadFromEnv reads configuration from environment variables (PORT, PGHOST,
// MONGO_URI, ...) with defaults suitable for local development.
func LoadFromEnv() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:           v.GetString("port"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      strings.ToLower(v.GetString("log_format")),
		StorageBackend: strings.ToLower(strings.TrimSpace(v.GetString("storage_backend"))),
		Postgres: PostgresConfig{
			URL:      v.GetString("database_url"),
			Host:     v.GetString("pghost"),
			Port:     v.GetString("pgport"),
			User:     v.GetString("pguser"),
			Password: v.GetString("pgpassword"),
			Database: v.GetString("pgdatabase"),
			MaxConns: v.GetInt32("pg_max_conns"),
			Migrate:  v.GetBool("db_migrate"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("mongo_uri"),
			Database:       v.GetString("mongo_database"),
			TripCollection: v.GetString("mongo_trips_collection"),
		},
		Redis: RedisConfig{
			URL: v.GetString("redis_url"),
		},
		Kafka: KafkaConfig{
			Brokers:   splitList(v.GetString("kafka_brokers")),
			TripTopic: v.GetString("kafka_trips_topic"),
			ClientID:  v.GetString("kafka_client_id"),
		},
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendLive:
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendMemory, BackendLive, cfg.StorageBackend)
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}
	if cfg.StorageBackend == BackendLive {
		if len(cfg.Kafka.Brokers) == 0 {
			return Config{}, fmt.Errorf("KAFKA_BROKERS must list at least one broker")
		}
		if cfg.Mongo.Database == "" || cfg.Mongo.TripCollection == "" {
			return Config{}, fmt.Errorf("MONGO_DATABASE and MONGO_TRIPS_COLLECTION must be non-empty")
		}
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
