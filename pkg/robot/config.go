package robot

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "qibullet.json"

// Config holds the CLI configuration
type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Leader     LeaderConfig     `json:"leader,omitempty"`
}

// SimulationConfig holds the simulation loop settings
type SimulationConfig struct {
	Hz int `json:"hz"`
}

// LeaderConfig holds the optional hardware leader rig settings
type LeaderConfig struct {
	Port        string `json:"port"`
	Calibration string `json:"calibration,omitempty"`
}

// HasLeader returns true if a hardware leader rig is configured
func (c *Config) HasLeader() bool {
	return c.Leader.Port != ""
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Simulation.Hz <= 0 {
		cfg.Simulation.Hz = 240
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
