package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileBase = "volunteer_hours_config"

// Config represents the server configuration
type Config struct {
	Port         int      `yaml:"port" validate:"min=1,max=65535"`
	DataDir      string   `yaml:"dataDir" validate:"required"`
	PublicDir    string   `yaml:"publicDir" validate:"required"`
	LogsDir      string   `yaml:"logsDir" validate:"required"`
	AllowOrigins []string `yaml:"allowOrigins,omitempty" validate:"dive,required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Port:         3000,
		DataDir:      "data",
		PublicDir:    "public",
		LogsDir:      "logs",
		AllowOrigins: []string{"*"},
	}
}

// LoadWithEnv loads the configuration for an environment.
// It looks for volunteer_hours_config.<env>.yaml, then volunteer_hours_config.yaml, in the current
// directory and then the user's home directory. Defaults are used if neither exists.
// The PORT environment variable overrides the configured port.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		return LoadFromPath(configPath)
	}

	cfg := Default()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads and validates the configuration from a specific path.
// Fields absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func applyEnvOverrides(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT environment variable %q: %w", port, err)
		}
		cfg.Port = p
	}
	return nil
}

// findConfigFile returns the first matching config file, or "" if none exists
func findConfigFile(env string) (string, error) {
	names := []string{configFileBase + ".yaml"}
	if env != "" {
		names = append([]string{fmt.Sprintf("%s.%s.yaml", configFileBase, env)}, names...)
	}

	dirs := []string{"."}
	homeDir, err := os.UserHomeDir()
	if err == nil {
		dirs = append(dirs, homeDir)
	}

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to check config file %s: %w", path, err)
			}
		}
	}

	return "", nil
}
