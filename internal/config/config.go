package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

const (
	// DefaultConfigFilename is the default filename for lock settings.
	DefaultConfigFilename = "keypad-lock.yaml"
	// DefaultCredentialFilename is the default credential document for the file driver.
	DefaultCredentialFilename = "keypad-lock-credential.json"
	// DefaultDatabaseFilename is the default database for the sqlite driver.
	DefaultDatabaseFilename = "keypad-lock.db"
	// DefaultNamespace scopes the credential key inside shared storage.
	DefaultNamespace = "keypad-lock"
	// DefaultQueueSize is the capacity of the credential persistence queue.
	DefaultQueueSize = 4
	// DefaultTickInterval is the poll loop period.
	DefaultTickInterval = 5 * time.Millisecond
	// MaxTickInterval keeps the timing error of every timeout below one blink period.
	MaxTickInterval = 100 * time.Millisecond
	// DefaultFilePermissions is the permission of files written by the lock.
	DefaultFilePermissions = 0o600
)

// Storage selects where the credential is persisted.
type Storage struct {
	// Driver is one of "file", "sqlite" or "memory".
	Driver string `yaml:"driver"`
	// Path is the credential document or database location.
	Path string `yaml:"path"`
	// Namespace scopes the credential key.
	Namespace string `yaml:"namespace"`
	// QueueSize bounds the number of pending credential writes.
	QueueSize int `yaml:"queue_size"`
}

// Config holds the lock daemon settings.
type Config struct {
	// Storage configures credential persistence.
	Storage Storage `yaml:"storage"`
	// TickInterval is the period of the poll loop.
	TickInterval time.Duration `yaml:"tick_interval"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// LogFile redirects logs to a file; the front panel needs the terminal.
	LogFile string `yaml:"log_file"`
	// WatchCredential reloads the credential when the file driver's document changes.
	WatchCredential bool `yaml:"watch_credential"`
	// ConstantTimeMatch compares codes in constant time instead of exactly.
	ConstantTimeMatch bool `yaml:"constant_time_match"`
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrUnknownDriver is returned for an unsupported storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
	// errTickInterval is returned when the tick interval is too coarse.
	errTickInterval = errors.New("tick interval is too long")
)

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	cfg := new(Config)
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from path and validates it. A missing file yields
// the defaults so the lock always starts.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	s := &cfg.Storage

	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if s.Driver == "" {
		s.Driver = DriverFile
	}

	switch s.Driver {
	case DriverFile:
		if s.Path == "" {
			s.Path = DefaultCredentialFilename
		}
	case DriverSQLite:
		if s.Path == "" {
			s.Path = DefaultDatabaseFilename
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}

	if strings.TrimSpace(s.Namespace) == "" {
		s.Namespace = DefaultNamespace
	}

	if s.QueueSize <= 0 {
		s.QueueSize = DefaultQueueSize
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.TickInterval > MaxTickInterval {
		return fmt.Errorf("%w: %s, max %s", errTickInterval, cfg.TickInterval, MaxTickInterval)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return nil
}
