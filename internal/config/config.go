package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configDir     = ".profilexport"
	configFile    = "config.yaml"
	logFile       = "session.log"
	DefaultServer = "http://localhost:5000"
	envPrefix     = "PROFILEXPORT_"
	envServerURL  = envPrefix + "SERVER_URL"
	envToken      = envPrefix + "TOKEN"
	envOutputDir  = envPrefix + "OUTPUT_DIR"
	envLogFile    = envPrefix + "LOG_FILE"
	envTimeout    = envPrefix + "TIMEOUT"
	envConfigFile = envPrefix + "CONFIG"
)

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	ServerURL string   `yaml:"server_url"`
	Token     string   `yaml:"token,omitempty"`
	OutputDir string   `yaml:"output_dir,omitempty"`
	LogFile   string   `yaml:"log_file,omitempty"`
	Timeout   Duration `yaml:"timeout,omitempty"`
}

func Default() Config {
	cfg := Config{ServerURL: DefaultServer}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.LogFile = filepath.Join(home, configDir, logFile)
	}
	return cfg
}

// DefaultPath returns the config file location, honouring PROFILEXPORT_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(envConfigFile); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configFile
	}
	return filepath.Join(home, configDir, configFile)
}

// Load reads the YAML file at path (a missing file is not an error), then
// applies .env and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(envToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(envOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(envLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(envTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envTimeout, err)
		}
		c.Timeout = Duration(d)
	}
	return nil
}

func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server_url %q: expected http(s)://host[:port]", c.ServerURL)
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Save writes the config as YAML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
