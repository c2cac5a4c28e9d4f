package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// HolidayRule marks recurring public holidays by RRULE. Days matching a
// rule are staffed with a single 24h shift, like weekend days.
type HolidayRule struct {
	Name  string `yaml:"name,omitempty"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseDSN   string        `yaml:"databaseDSN" validate:"required"`
	ListenAddr    string        `yaml:"listenAddr,omitempty"`
	WeekendPreset string        `yaml:"weekendPreset,omitempty" validate:"omitempty,oneof=saturday_sunday friday_saturday thursday_saturday"`
	HolidayRules  []HolidayRule `yaml:"holidayRules,omitempty" validate:"dive"`
}

const (
	DefaultListenAddr    = ":8080"
	DefaultWeekendPreset = "saturday_sunday"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from nurseshift_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads the configuration from the path in the
// NURSESHIFT_CONFIG environment variable when set, falling back to the
// standard lookup otherwise
func LoadWithEnv() (*Config, error) {
	if path := os.Getenv("NURSESHIFT_CONFIG"); path != "" {
		return LoadFromPath(path)
	}
	return Load()
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.WeekendPreset == "" {
		cfg.WeekendPreset = DefaultWeekendPreset
	}
}

// findConfigFile searches for nurseshift_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "nurseshift_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
