// Package config loads application configuration from config/app.json,
// .env, and the process environment (highest precedence), into an
// immutable Config constructed once at startup.
//
// Required keys (Load fails fast when they are missing):
//
//	MONGO_URI    MongoDB connection string
//	JWT_SECRET   HMAC signing key for session tokens
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultMongoDB    = "suby"
	defaultRedisAddr  = "localhost:6379"
	defaultAppPort    = "5000"
	defaultAppEnv     = "local"
	defaultTokenTTL   = time.Hour
	defaultWorkers    = 4
	defaultLocalRoot  = "uploads"
	defaultStorageURL = "http://localhost:5000/firm/uploads"
)

// Config holds every setting the application reads. It is built once by
// Load and passed by reference; nothing reads the environment after boot.
type Config struct {
	AppEnv  string
	AppPort string

	MongoURI          string
	MongoDB           string
	MongoTransactions bool // multi-document transactions (replica set deployments only)

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr     string
	RedisPassword string

	QueueDriver  string // "memory" or "redis"
	QueueWorkers int

	StorageDisk      string // "local" or "s3"
	StorageLocalRoot string
	StorageURL       string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string

	LogToMongo bool
}

// Load merges config/app.json, .env, and the process environment and
// validates the result. Missing files are fine; missing required keys
// are not.
func Load() (*Config, error) {
	values := map[string]string{}

	if err := mergeJSONConfig("config/app.json", values); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if err := mergeDotEnv(".env", values); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	mergeProcessEnv(values)

	get := func(key, fallback string) string {
		if v := strings.TrimSpace(values[key]); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		AppEnv:  get("APP_ENV", defaultAppEnv),
		AppPort: get("APP_PORT", get("PORT", defaultAppPort)),

		MongoURI:          get("MONGO_URI", ""),
		MongoDB:           get("MONGO_DB", defaultMongoDB),
		MongoTransactions: isTrue(get("MONGO_TRANSACTIONS", "false")),

		JWTSecret: get("JWT_SECRET", ""),
		TokenTTL:  parseDuration(get("TOKEN_TTL", ""), defaultTokenTTL),

		RedisAddr:     get("REDIS_ADDR", defaultRedisAddr),
		RedisPassword: get("REDIS_PASSWORD", ""),

		QueueDriver:  get("QUEUE_DRIVER", "memory"),
		QueueWorkers: parseInt(get("QUEUE_WORKERS", ""), defaultWorkers),

		StorageDisk:      get("STORAGE_DISK", "local"),
		StorageLocalRoot: get("STORAGE_LOCAL_ROOT", defaultLocalRoot),
		StorageURL:       strings.TrimRight(get("STORAGE_URL", defaultStorageURL), "/"),

		S3Bucket:   get("S3_BUCKET", ""),
		S3Region:   get("S3_REGION", "us-east-1"),
		S3Key:      get("S3_KEY", ""),
		S3Secret:   get("S3_SECRET", ""),
		S3Endpoint: get("S3_ENDPOINT", ""),
		S3URL:      strings.TrimRight(get("S3_URL", ""), "/"),

		LogToMongo: isTrue(get("LOG_TO_MONGO", "false")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required keys: %s", strings.Join(missing, ", "))
	}

	switch c.QueueDriver {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: unsupported QUEUE_DRIVER %q (supported: memory, redis)", c.QueueDriver)
	}

	switch c.StorageDisk {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("config: STORAGE_DISK=s3 requires S3_BUCKET")
		}
	default:
		return fmt.Errorf("config: unsupported STORAGE_DISK %q (supported: local, s3)", c.StorageDisk)
	}

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return nil
}

// mergeProcessEnv overlays real environment variables for the well-known
// keys plus any key already present, so container deployments win over files.
func mergeProcessEnv(out map[string]string) {
	known := []string{
		"APP_ENV", "APP_PORT", "PORT",
		"MONGO_URI", "MONGO_DB", "MONGO_TRANSACTIONS",
		"JWT_SECRET", "TOKEN_TTL",
		"REDIS_ADDR", "REDIS_PASSWORD",
		"QUEUE_DRIVER", "QUEUE_WORKERS",
		"STORAGE_DISK", "STORAGE_LOCAL_ROOT", "STORAGE_URL",
		"S3_BUCKET", "S3_REGION", "S3_KEY", "S3_SECRET", "S3_ENDPOINT", "S3_URL",
		"LOG_TO_MONGO",
	}
	for k := range out {
		known = append(known, k)
	}
	for _, k := range known {
		if v := os.Getenv(k); v != "" {
			out[k] = v
		}
	}
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
