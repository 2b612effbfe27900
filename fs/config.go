package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/vanity"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk configuration. Pointer fields distinguish a
// missing key from a zero value. The second field of each pair is the key
// name used by earlier versions of the tool; the canonical key wins.
type fileConfig struct {
	Credential *string `json:"credential" yaml:"credential"`
	APIKey     *string `json:"api_key" yaml:"api_key"`

	CheckIntervalDays *int `json:"check_interval_days" yaml:"check_interval_days"`

	RetryDelaySeconds *float64 `json:"retry_delay_seconds" yaml:"retry_delay_seconds"`
	RetryDelay        *float64 `json:"retry_delay" yaml:"retry_delay"`

	MaxRetries *int `json:"max_retries" yaml:"max_retries"`

	MaxConcurrent *int `json:"max_concurrent" yaml:"max_concurrent"`
	SemLimit      *int `json:"sem_limit" yaml:"sem_limit"`

	IgnoreSkipSet  *bool `json:"ignore_skip_set" yaml:"ignore_skip_set"`
	IgnoreSkiplist *bool `json:"ignore_skiplist" yaml:"ignore_skiplist"`

	IgnoreCheckInterval *bool    `json:"ignore_check_interval" yaml:"ignore_check_interval"`
	RequestsPerSecond   *float64 `json:"requests_per_second" yaml:"requests_per_second"`
	LogFile             *string  `json:"log_file" yaml:"log_file"`
}

// LoadConfig reads the configuration file at path on top of
// vanity.DefaultConfig. Files ending in .yaml or .yml are parsed as YAML,
// anything else as JSON. A missing file yields the defaults.
func LoadConfig(path string) (vanity.Config, error) {
	cfg := vanity.DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, vanity.Errorf(vanity.EINVALID, "malformed YAML config %s: %v", path, err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return cfg, vanity.Errorf(vanity.EINVALID, "malformed JSON config %s: %v", path, err)
		}
	}

	fc.apply(&cfg)
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *vanity.Config) {
	if v := first(fc.Credential, fc.APIKey); v != nil {
		cfg.Credential = *v
	}
	if fc.CheckIntervalDays != nil {
		cfg.CheckIntervalDays = *fc.CheckIntervalDays
	}
	if v := first(fc.RetryDelaySeconds, fc.RetryDelay); v != nil {
		cfg.RetryDelay = time.Duration(*v * float64(time.Second))
	}
	if fc.MaxRetries != nil {
		cfg.MaxRetries = *fc.MaxRetries
	}
	if v := first(fc.MaxConcurrent, fc.SemLimit); v != nil {
		cfg.MaxConcurrent = *v
	}
	if v := first(fc.IgnoreSkipSet, fc.IgnoreSkiplist); v != nil {
		cfg.IgnoreSkipSet = *v
	}
	if fc.IgnoreCheckInterval != nil {
		cfg.IgnoreCheckInterval = *fc.IgnoreCheckInterval
	}
	if fc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *fc.RequestsPerSecond
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
}

func first[T any](canonical, alias *T) *T {
	if canonical != nil {
		return canonical
	}
	return alias
}
