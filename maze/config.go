package maze

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the unified configuration for the solver CLI and HTTP surface.
type Config struct {
	MQTT    MQTTConfig    `yaml:"mqtt" json:"mqtt"`
	Maze    MazeConfig    `yaml:"maze" json:"maze"`
	HTTP    HTTPConfig    `yaml:"http,omitempty" json:"http,omitempty"`
	Results ResultsConfig `yaml:"results,omitempty" json:"results,omitempty"`
}

// MQTTConfig configures the broker transport. An empty Broker means the
// in-process simulator is used instead.
type MQTTConfig struct {
	Broker   string `yaml:"broker,omitempty" json:"broker,omitempty"`
	Prefix   string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	ClientID string `yaml:"clientId,omitempty" json:"clientId,omitempty"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

// MazeConfig selects which maze the run targets.
type MazeConfig struct {
	MapName string `yaml:"mapName,omitempty" json:"mapName,omitempty"`
	Random  bool   `yaml:"random,omitempty" json:"random,omitempty"`
	Height  int    `yaml:"height,omitempty" json:"height,omitempty"`
	Width   int    `yaml:"width,omitempty" json:"width,omitempty"`
	Seed    int64  `yaml:"seed,omitempty" json:"seed,omitempty"`
	DelayMS int    `yaml:"delayMs,omitempty" json:"delayMs,omitempty"`
}

// HTTPConfig configures the optional status server.
type HTTPConfig struct {
	Enabled bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Port    int  `yaml:"port,omitempty" json:"port,omitempty"`
}

// ResultsConfig configures the run result store.
type ResultsConfig struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// DefaultConfig returns a config suitable for a local simulator run.
func DefaultConfig() *Config {
	return &Config{
		Maze: MazeConfig{Height: 15, Width: 15, Seed: 1},
		HTTP: HTTPConfig{Port: 8080},
	}
}

// LoadConfig loads the unified configuration from a YAML file and applies
// defaults for anything left unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Maze.Random && c.Maze.MapName != "" {
		return fmt.Errorf("maze.random and maze.mapName are mutually exclusive")
	}
	if c.Maze.Random {
		if c.Maze.Height < 3 || c.Maze.Width < 3 {
			return fmt.Errorf("maze.height and maze.width must be at least 3 for random mazes")
		}
	}
	if c.Maze.DelayMS < 0 {
		return fmt.Errorf("maze.delayMs must not be negative")
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.MQTT.Broker == "" && (c.MQTT.Username != "" || c.MQTT.Password != "") {
		return fmt.Errorf("mqtt credentials given without mqtt.broker")
	}
	return nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
