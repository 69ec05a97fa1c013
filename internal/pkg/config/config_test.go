package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var baseValidConfig = AppConfig{
	Server: ServerConfig{Port: 8080},
	Mongo: MongoConfig{
		URI:             "mongodb://localhost:27017",
		DBName:          "pawn",
		MinPoolSize:     5,
		MaxPoolSize:     20,
		MaxConnIdleTime: 25 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	},
	Redis: RedisConfig{
		Addr:           "localhost:6379",
		ConnectTimeout: 5 * time.Second,
	},
	Ledger: LedgerConfig{
		Timezone:     "Asia/Kolkata",
		LockTTL:      time.Minute,
		LockWait:     30 * time.Second,
		LockPollTick: 200 * time.Millisecond,
	},
	PubSub: PubSubConfig{
		ProjectID:         "pid",
		LedgerEventsTopic: "ledger-events",
	},
}

func writeTempConfig(t *testing.T, cfg AppConfig) string {
	t.Helper()
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	tmp := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmp, data, 0o644))
	return tmp
}

func TestValidateConfigErrors(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		c := baseValidConfig
		assert.NoError(t, validateConfig(&c))
	})

	t.Run("missing mongo uri", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.URI = ""
		assert.Error(t, validateConfig(&c))
	})

	t.Run("missing db name", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.DBName = ""
		assert.Error(t, validateConfig(&c))
	})

	t.Run("min pool size too high", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.MinPoolSize = 11
		assert.Error(t, validateConfig(&c))
	})

	t.Run("max pool size too high", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.MaxPoolSize = 100
		assert.Error(t, validateConfig(&c))
	})

	t.Run("unknown timezone", func(t *testing.T) {
		c := baseValidConfig
		c.Ledger.Timezone = "Mars/Olympus"
		assert.Error(t, validateConfig(&c))
	})

	t.Run("non positive lock ttl", func(t *testing.T) {
		c := baseValidConfig
		c.Ledger.LockTTL = 0
		assert.Error(t, validateConfig(&c))
	})

	t.Run("lock wait shorter than poll interval", func(t *testing.T) {
		c := baseValidConfig
		c.Ledger.LockWait = 10 * time.Millisecond
		assert.Error(t, validateConfig(&c))
	})

	t.Run("topic without project", func(t *testing.T) {
		c := baseValidConfig
		c.PubSub.ProjectID = ""
		assert.Error(t, validateConfig(&c))
	})
}

func TestLoadFromConfigFilePath(t *testing.T) {
	t.Run("loads and applies defaults", func(t *testing.T) {
		c := baseValidConfig
		c.Ledger = LedgerConfig{}
		c.Logging = LogConfig{}
		path := writeTempConfig(t, c)

		cfg, err := LoadFromConfigFilePath(path)
		require.NoError(t, err)

		assert.Equal(t, "pawn", cfg.Mongo.DBName)
		assert.Equal(t, "info", cfg.Logging.LogLevel)
		assert.Equal(t, "Asia/Kolkata", cfg.Ledger.Timezone)
		assert.Equal(t, 60*time.Second, cfg.Ledger.LockTTL)
		assert.Equal(t, 30*time.Second, cfg.Ledger.LockWait)
		assert.Equal(t, 200*time.Millisecond, cfg.Ledger.LockPollTick)
		assert.Equal(t, "ledger-snapshots", cfg.GCS.FolderName)
		assert.Equal(t, "pawn-ledger", cfg.Otel.ServiceName)
	})

	t.Run("keeps durations from the file", func(t *testing.T) {
		c := baseValidConfig
		c.Ledger.LockWait = 5 * time.Second
		path := writeTempConfig(t, c)

		cfg, err := LoadFromConfigFilePath(path)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.Ledger.LockWait)
		assert.Equal(t, 25*time.Minute, cfg.Mongo.MaxConnIdleTime)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeTempConfig(t, baseValidConfig)
		t.Setenv("MONGO_DB_NAME", "override")
		t.Setenv("LEDGER_TIMEZONE", "UTC")
		t.Setenv("LEDGER_LOCK_WAIT", "2s")
		t.Setenv("SERVER_PORT", "9090")

		cfg, err := LoadFromConfigFilePath(path)
		require.NoError(t, err)
		assert.Equal(t, "override", cfg.Mongo.DBName)
		assert.Equal(t, "UTC", cfg.Ledger.Timezone)
		assert.Equal(t, 2*time.Second, cfg.Ledger.LockWait)
		assert.Equal(t, 9090, cfg.Server.Port)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromConfigFilePath(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		tmp := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(tmp, []byte("mongo: [unclosed"), 0o644))
		_, err := LoadFromConfigFilePath(tmp)
		assert.Error(t, err)
	})

	t.Run("validation failure", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.URI = ""
		path := writeTempConfig(t, c)
		_, err := LoadFromConfigFilePath(path)
		assert.Error(t, err)
	})
}

func TestLoadFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeTempConfig(t, baseValidConfig)

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CONFIG_PATH="+path+"\n"), 0o644))

	t.Setenv("ENV_FILE", envFile)
	// godotenv does not override variables that are already set, so make
	// sure CONFIG_PATH starts out unset for this test.
	if prev, ok := os.LookupEnv("CONFIG_PATH"); ok {
		require.NoError(t, os.Unsetenv("CONFIG_PATH"))
		t.Cleanup(func() { _ = os.Setenv("CONFIG_PATH", prev) })
	}
	t.Cleanup(func() { _ = os.Unsetenv("CONFIG_PATH") })

	cfg, err := LoadFromConfig()
	require.NoError(t, err)
	assert.Equal(t, "pawn", cfg.Mongo.DBName)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("CFG_INT", "42")
	t.Setenv("CFG_BAD_INT", "x")
	t.Setenv("CFG_UINT", "7")
	t.Setenv("CFG_DUR", "1500ms")
	t.Setenv("CFG_BLANK", "   ")

	assert.Equal(t, 42, GetEnvOrDefaultAsInt("CFG_INT", 1))
	assert.Equal(t, 1, GetEnvOrDefaultAsInt("CFG_BAD_INT", 1))
	assert.Equal(t, 3, GetEnvOrDefaultAsInt("CFG_UNSET", 3))
	assert.Equal(t, uint64(7), GetEnvOrDefaultAsUint64("CFG_UINT", 1))
	assert.Equal(t, 1500*time.Millisecond, GetEnvOrDefaultAsDuration("CFG_DUR", time.Second))
	assert.Equal(t, time.Second, GetEnvOrDefaultAsDuration("CFG_BAD_INT", time.Second))
	assert.Equal(t, "def", GetEnvOrDefaultAsString("CFG_BLANK", "def"))
}
