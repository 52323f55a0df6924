// Package config loads runtime settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration.
type Config struct {
	HTTPAddr string // address:port for the HTTP server
	LogLevel string // debug, info, warn or error

	MinIOEndpoint  string // host:port of the object store
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	Bucket         string

	InputPrefix  string // key prefix for uploaded timesheets
	OutputPrefix string // key prefix for merge reports
	PresignTTL   time.Duration

	PostgresHost     string
	PostgresPort     string
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string

	KafkaBrokers []string // empty disables event publishing
	KafkaTopic   string
}

// Load reads the given .env files (missing files are ignored), then the
// process environment. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	ttl, err := getEnvDuration("PRESIGN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	useSSL, err := getEnvBool("MINIO_USE_SSL", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8000"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MinIOEndpoint:    endpoint(os.Getenv("MINIO_SERVER"), os.Getenv("MINIO_PORT_API_EXTERNAL")),
		MinIOAccessKey:   os.Getenv("MINIO_ROOT_USER"),
		MinIOSecretKey:   os.Getenv("MINIO_ROOT_PASSWORD"),
		MinIOUseSSL:      useSSL,
		Bucket:           getEnv("MINIO_BUCKET", "estec"),
		InputPrefix:      getEnv("TIMETRACKER_INPUT_PREFIX", "data/POD/TimeTracker/Input/"),
		OutputPrefix:     getEnv("TIMETRACKER_OUTPUT_PREFIX", "data/POD/TimeTracker/Output/"),
		PresignTTL:       ttl,
		PostgresHost:     os.Getenv("POSTGRESQL_SERVER"),
		PostgresPort:     getEnv("POSTGRES_PORT_EXTERNAL", "5432"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		KafkaBrokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS"), ","),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "timetracker.merge.completed"),
	}

	return cfg, nil
}

// Validate checks the settings the HTTP service cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.MinIOEndpoint == "" {
		missing = append(missing, "MINIO_SERVER")
	}
	if c.MinIOAccessKey == "" {
		missing = append(missing, "MINIO_ROOT_USER")
	}
	if c.MinIOSecretKey == "" {
		missing = append(missing, "MINIO_ROOT_PASSWORD")
	}
	if c.PostgresHost == "" {
		missing = append(missing, "POSTGRESQL_SERVER")
	}
	if c.PostgresDB == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func endpoint(host, port string) string {
	if host == "" || port == "" {
		return host
	}
	return host + ":" + port
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
