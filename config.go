package vanity

import "time"

// Configuration defaults.
const (
	DefaultCheckIntervalDays = 7
	DefaultRetryDelay        = 1 * time.Second
	DefaultMaxRetries        = 5
	DefaultMaxConcurrent     = 2
	DefaultLogFile           = "output/activity.log"
)

// Config holds the immutable parameters of one run.
// It is built once at the entry point and passed by value.
type Config struct {
	// Credential is the Steam Web API key. Required in profile mode.
	Credential string

	Mode Mode

	// CheckIntervalDays is the minimum number of days before an identifier
	// recorded as unavailable is checked again.
	CheckIntervalDays int

	// RetryDelay is the first backoff delay; it doubles after every failed attempt.
	RetryDelay time.Duration

	// MaxRetries is the total attempt budget per identifier, shared by
	// throttled responses and transport failures.
	MaxRetries int

	// MaxConcurrent caps the number of checks in flight.
	MaxConcurrent int

	IgnoreSkipSet       bool
	IgnoreCheckInterval bool

	// RequestsPerSecond paces outgoing requests across all workers.
	// Zero disables pacing.
	RequestsPerSecond float64

	LogFile string
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		Mode:              ModeProfile,
		CheckIntervalDays: DefaultCheckIntervalDays,
		RetryDelay:        DefaultRetryDelay,
		MaxRetries:        DefaultMaxRetries,
		MaxConcurrent:     DefaultMaxConcurrent,
		LogFile:           DefaultLogFile,
	}
}

// Validate returns an error if the config contains invalid fields.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Mode == ModeProfile && c.Credential == "" {
		return Errorf(EINVALID, "credential required for profile mode")
	}
	if c.CheckIntervalDays < 0 {
		return Errorf(EINVALID, "check interval must not be negative")
	}
	if c.RetryDelay < 0 {
		return Errorf(EINVALID, "retry delay must not be negative")
	}
	if c.MaxRetries < 1 {
		return Errorf(EINVALID, "max retries must be at least 1")
	}
	if c.MaxConcurrent < 1 {
		return Errorf(EINVALID, "max concurrent must be at least 1")
	}
	if c.RequestsPerSecond < 0 {
		return Errorf(EINVALID, "requests per second must not be negative")
	}
	return nil
}
