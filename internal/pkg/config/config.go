package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"pawn-ledger/internal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-level config
type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	LogLevel string `yaml:"level"`
}

// MongoDB connection config
type MongoConfig struct {
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	URI             string        `yaml:"uri"`
	DBName          string        `yaml:"db_name"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

// Redis connection config. An empty Addr disables Redis and the ledger
// falls back to an in-process date lock.
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	CertContent    string        `yaml:"cert_content"`
}

// LedgerConfig controls ledger materialization.
type LedgerConfig struct {
	Timezone     string        `yaml:"timezone"`
	LockTTL      time.Duration `yaml:"lock_ttl"`
	LockWait     time.Duration `yaml:"lock_wait"`
	LockPollTick time.Duration `yaml:"lock_poll_interval"`
}

type PubSubConfig struct {
	ProjectID         string `yaml:"project_id"`
	LedgerEventsTopic string `yaml:"ledger_events_topic"`
}

type GCSConfig struct {
	BucketName string `yaml:"bucket_name"`
	FolderName string `yaml:"folder_name"`
}

type OtelConfig struct {
	ServiceName  string `yaml:"service_name"`
	CollectorURL string `yaml:"collector_url"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server  ServerConfig `yaml:"server"`
	Logging LogConfig    `yaml:"logging"`
	Mongo   MongoConfig  `yaml:"mongo"`
	Redis   RedisConfig  `yaml:"redis"`
	Ledger  LedgerConfig `yaml:"ledger"`
	PubSub  PubSubConfig `yaml:"pubsub"`
	GCS     GCSConfig    `yaml:"gcs"`
	Otel    OtelConfig   `yaml:"otel"`
}

// nolint: funlen
func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {

	// server config defaults
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", orDefaultInt(cfg.Server.Port, 8080))
	cfg.Server.ReadHeaderTimeout = GetEnvOrDefaultAsDuration("SERVER_READ_HEADER_TIMEOUT", orDefaultDuration(cfg.Server.ReadHeaderTimeout, 5*time.Second))
	cfg.Server.ShutdownTimeout = GetEnvOrDefaultAsDuration("SERVER_SHUTDOWN_TIMEOUT", orDefaultDuration(cfg.Server.ShutdownTimeout, 8*time.Second))

	// log config defaults
	cfg.Logging.LogLevel = GetEnvOrDefaultAsString("LOGGING_LEVEL", orDefaultString(cfg.Logging.LogLevel, "info"))

	// MongoDB config defaults
	cfg.Mongo.URI = GetEnvOrDefaultAsString("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DBName = GetEnvOrDefaultAsString("MONGO_DB_NAME", cfg.Mongo.DBName)
	cfg.Mongo.Username = GetEnvOrDefaultAsString("MONGO_USERNAME", cfg.Mongo.Username)
	cfg.Mongo.Password = GetEnvOrDefaultAsString("MONGO_PASSWORD", cfg.Mongo.Password)
	cfg.Mongo.MaxPoolSize = GetEnvOrDefaultAsUint64("MONGO_MAX_POOL_SIZE", orDefaultUint64(cfg.Mongo.MaxPoolSize, 20))
	cfg.Mongo.MinPoolSize = GetEnvOrDefaultAsUint64("MONGO_MIN_POOL_SIZE", orDefaultUint64(cfg.Mongo.MinPoolSize, 5))
	cfg.Mongo.MaxConnIdleTime = GetEnvOrDefaultAsDuration("MONGO_MAX_CONN_IDLE_TIME", orDefaultDuration(cfg.Mongo.MaxConnIdleTime, 30*time.Minute))
	cfg.Mongo.ConnectTimeout = GetEnvOrDefaultAsDuration("MONGO_CONNECT_TIMEOUT", orDefaultDuration(cfg.Mongo.ConnectTimeout, 10*time.Second))

	// Redis config defaults
	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.EnableTLS = GetEnvOrDefaultAsInt("REDIS_ENABLE_TLS", boolToInt(cfg.Redis.EnableTLS)) == 1
	cfg.Redis.ConnectTimeout = GetEnvOrDefaultAsDuration("REDIS_CONNECT_TIMEOUT", orDefaultDuration(cfg.Redis.ConnectTimeout, 10*time.Second))
	cfg.Redis.CertContent = GetEnvOrDefaultAsString("REDIS_TLS_CERT", cfg.Redis.CertContent)

	// Ledger config defaults
	cfg.Ledger.Timezone = GetEnvOrDefaultAsString("LEDGER_TIMEZONE", orDefaultString(cfg.Ledger.Timezone, "Asia/Kolkata"))
	cfg.Ledger.LockTTL = GetEnvOrDefaultAsDuration("LEDGER_LOCK_TTL", orDefaultDuration(cfg.Ledger.LockTTL, 60*time.Second))
	cfg.Ledger.LockWait = GetEnvOrDefaultAsDuration("LEDGER_LOCK_WAIT", orDefaultDuration(cfg.Ledger.LockWait, 30*time.Second))
	cfg.Ledger.LockPollTick = GetEnvOrDefaultAsDuration("LEDGER_LOCK_POLL_INTERVAL", orDefaultDuration(cfg.Ledger.LockPollTick, 200*time.Millisecond))

	// PubSub config defaults
	cfg.PubSub.ProjectID = GetEnvOrDefaultAsString("PROJECT_ID", cfg.PubSub.ProjectID)
	cfg.PubSub.LedgerEventsTopic = GetEnvOrDefaultAsString("PUBSUB_LEDGER_EVENTS_TOPIC", cfg.PubSub.LedgerEventsTopic)

	cfg.GCS.BucketName = GetEnvOrDefaultAsString("GCS_BUCKET_NAME", cfg.GCS.BucketName)
	cfg.GCS.FolderName = GetEnvOrDefaultAsString("GCS_FOLDER_NAME", orDefaultString(cfg.GCS.FolderName, "ledger-snapshots"))

	cfg.Otel.ServiceName = GetEnvOrDefaultAsString("SERVICE_NAME", orDefaultString(cfg.Otel.ServiceName, "pawn-ledger"))
	cfg.Otel.CollectorURL = GetEnvOrDefaultAsString("OTEL_URL", cfg.Otel.CollectorURL)

	return cfg
}

// LoadFromConfigFilePath loads and parses config file into AppConfig
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {

	// #nosec G304: configPath comes from the deployment environment
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, zap.String("path", configPath))
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := validateConfig(defaultCfg); err != nil {
		logger.Error("Config validation failed", err)
		return nil, err
	}

	logger.Info("Configuration loaded successfully", zap.String("path", configPath))

	return defaultCfg, nil
}

func validateConfig(cfg *AppConfig) error {
	if err := validateMongoConfig(cfg.Mongo); err != nil {
		return err
	}
	if err := validateLedgerConfig(cfg.Ledger); err != nil {
		return err
	}
	if cfg.PubSub.LedgerEventsTopic != "" && cfg.PubSub.ProjectID == "" {
		return errors.New("pubsub.project_id is required when pubsub.ledger_events_topic is set")
	}
	return nil
}

func validateMongoConfig(mongo MongoConfig) error {
	if mongo.URI == "" {
		return errors.New("mongo.uri is required")
	}
	if mongo.DBName == "" {
		return errors.New("mongo.db_name is required")
	}
	if mongo.MinPoolSize < 1 || mongo.MinPoolSize > 10 {
		return fmt.Errorf("mongo.min_pool_size must be between 1 and 10, got %d", mongo.MinPoolSize)
	}
	if mongo.MaxPoolSize < mongo.MinPoolSize || mongo.MaxPoolSize > 50 {
		return fmt.Errorf("mongo.max_pool_size must be between %d and 50, got %d", mongo.MinPoolSize, mongo.MaxPoolSize)
	}
	return nil
}

func validateLedgerConfig(ledger LedgerConfig) error {
	if _, err := time.LoadLocation(ledger.Timezone); err != nil {
		return fmt.Errorf("ledger.timezone %q is not a valid IANA zone: %w", ledger.Timezone, err)
	}
	if ledger.LockTTL <= 0 {
		return fmt.Errorf("ledger.lock_ttl must be positive, got %v", ledger.LockTTL)
	}
	if ledger.LockWait < ledger.LockPollTick {
		return fmt.Errorf("ledger.lock_wait (%v) must not be shorter than the poll interval (%v)",
			ledger.LockWait, ledger.LockPollTick)
	}
	return nil
}

// GetEnvOrDefaultAsInt returns the value of the given env variable
// as an int or the default value if not set or invalid.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return int(value)
}

// GetEnvOrDefaultAsUint64 returns the value of the env variable
// as uint64 or the default value if not set or invalid.
func GetEnvOrDefaultAsUint64(key string, defaultValue uint64) uint64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvOrDefaultAsDuration parses values such as "30s" or "500ms".
func GetEnvOrDefaultAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return defaultVal
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultUint64(v, def uint64) uint64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultDuration(v, def time.Duration) time.Duration {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// LoadFromConfig loads variables from an optional .env file and then the
// YAML config file named by CONFIG_PATH.
func LoadFromConfig() (*AppConfig, error) {
	envFile := GetEnvOrDefaultAsString("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Could not load env file", zap.String("path", envFile), zap.Error(err))
	}

	configPath := GetEnvOrDefaultAsString("CONFIG_PATH", "configs/config.yaml")

	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return cfg, nil
}
