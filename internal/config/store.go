package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "jiggler"
	configFileName = "config.yaml"
)

type yamlSettings struct {
	IntervalSeconds      int  `yaml:"interval_seconds"`
	MovePixels           int  `yaml:"move_pixels"`
	StartOnLaunch        bool `yaml:"start_on_launch"`
	IdleAware            bool `yaml:"idle_aware"`
	IdleThresholdSeconds int  `yaml:"idle_threshold_seconds"`
	SafeMode             bool `yaml:"safe_mode"`
	JitterPercent        int  `yaml:"jitter_percent"`
}

// Store loads and saves the configuration as YAML.
type Store struct {
	path   string
	logger *zap.SugaredLogger
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{path: path, logger: logger}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, configFileName), nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration. It never fails: a missing, unreadable or
// malformed file yields the defaults.
func (s *Store) Load() Configuration {
	cfg, err := s.read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnf("config: using defaults: %v", err)
		}
		return Defaults()
	}
	return cfg
}

func (s *Store) read() (Configuration, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Configuration{}, fmt.Errorf("read config file: %w", err)
	}

	defaults := Defaults()
	fileData := yamlSettings{
		IntervalSeconds:      defaults.IntervalSeconds,
		MovePixels:           defaults.MovePixels,
		StartOnLaunch:        defaults.StartOnLaunch,
		IdleAware:            defaults.IdleAware,
		IdleThresholdSeconds: defaults.IdleThresholdSeconds,
		SafeMode:             defaults.SafeMode,
		JitterPercent:        defaults.JitterPercent,
	}
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return Configuration{}, fmt.Errorf("parse config yaml: %w", err)
	}

	cfg := Configuration{
		IntervalSeconds:      fileData.IntervalSeconds,
		MovePixels:           fileData.MovePixels,
		StartOnLaunch:        fileData.StartOnLaunch,
		IdleAware:            fileData.IdleAware,
		IdleThresholdSeconds: fileData.IdleThresholdSeconds,
		SafeMode:             fileData.SafeMode,
		JitterPercent:        fileData.JitterPercent,
		IsFirstRun:           false,
	}
	return cfg.Clamp(), nil
}

// Save clamps cfg, writes it and returns the persisted value with
// IsFirstRun cleared.
func (s *Store) Save(cfg Configuration) (Configuration, error) {
	cfg = cfg.Clamp()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return cfg, fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlSettings{
		IntervalSeconds:      cfg.IntervalSeconds,
		MovePixels:           cfg.MovePixels,
		StartOnLaunch:        cfg.StartOnLaunch,
		IdleAware:            cfg.IdleAware,
		IdleThresholdSeconds: cfg.IdleThresholdSeconds,
		SafeMode:             cfg.SafeMode,
		JitterPercent:        cfg.JitterPercent,
	})
	if err != nil {
		return cfg, fmt.Errorf("marshal config yaml: %w", err)
	}

	// Write to a sibling file and rename so the watcher never sees a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return cfg, fmt.Errorf("write config file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return cfg, fmt.Errorf("replace config file: %w", err)
	}

	cfg.IsFirstRun = false
	s.logger.Infof("config: saved %s", s.path)
	return cfg, nil
}
