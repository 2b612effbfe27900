package fs_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/vanity"
	"github.com/fwojciec/vanity/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Configuration Files
// config.json from earlier versions keeps working; YAML is accepted too.

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := fs.LoadConfig(filepath.Join(t.TempDir(), "config.json"))

	require.NoError(t, err)
	assert.Equal(t, vanity.DefaultConfig(), cfg)
}

func TestLoadConfig_AcceptsLegacyKeys(t *testing.T) {
	t.Parallel()

	// Given a config written by an earlier version of the tool
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{
    "api_key": "legacy-key",
    "check_interval_days": 3,
    "retry_delay": 2,
    "max_retries": 4,
    "sem_limit": 6,
    "ignore_skiplist": true,
    "ignore_check_interval": true,
    "log_file": "logs/run.log"
}`)

	// When I load it
	cfg, err := fs.LoadConfig(path)

	// Then every key is mapped
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.Credential)
	assert.Equal(t, 3, cfg.CheckIntervalDays)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, 4, cfg.MaxRetries)
	assert.Equal(t, 6, cfg.MaxConcurrent)
	assert.True(t, cfg.IgnoreSkipSet)
	assert.True(t, cfg.IgnoreCheckInterval)
	assert.Equal(t, "logs/run.log", cfg.LogFile)
}

func TestLoadConfig_CanonicalKeysWin(t *testing.T) {
	t.Parallel()

	// Given a config carrying both names for the same settings
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"credential": "new", "api_key": "old", "max_concurrent": 1, "sem_limit": 9}`)

	// When I load it
	cfg, err := fs.LoadConfig(path)

	// Then the canonical names take precedence
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Credential)
	assert.Equal(t, 1, cfg.MaxConcurrent)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	t.Parallel()

	// Given a YAML config
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `credential: yaml-key
retry_delay_seconds: 0.5
requests_per_second: 2.5
ignore_skip_set: true
`)

	// When I load it
	cfg, err := fs.LoadConfig(path)

	// Then the values are applied over the defaults
	require.NoError(t, err)
	assert.Equal(t, "yaml-key", cfg.Credential)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.InDelta(t, 2.5, cfg.RequestsPerSecond, 0.0001)
	assert.True(t, cfg.IgnoreSkipSet)
	assert.Equal(t, vanity.DefaultMaxRetries, cfg.MaxRetries)
}

func TestLoadConfig_ExplicitZeroOverridesDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"check_interval_days": 0}`)

	cfg, err := fs.LoadConfig(path)

	require.NoError(t, err)
	assert.Zero(t, cfg.CheckIntervalDays)
}

func TestLoadConfig_RejectsMalformedFiles(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		writeFile(t, path, `{"api_key": `)

		_, err := fs.LoadConfig(path)
		assert.Equal(t, vanity.EINVALID, vanity.ErrorCode(err))
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yml")
		writeFile(t, path, "max_retries: [\n")

		_, err := fs.LoadConfig(path)
		assert.Equal(t, vanity.EINVALID, vanity.ErrorCode(err))
	})

	t.Run("wrong value type", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		writeFile(t, path, `{"max_retries": "five"}`)

		_, err := fs.LoadConfig(path)
		assert.Equal(t, vanity.EINVALID, vanity.ErrorCode(err))
	})
}
