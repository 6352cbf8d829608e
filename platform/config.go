package platform

import (
	"encoding/json"
	"os"
)

// Config is the hardware description consumed at attachment. The field
// names follow the device-tree properties of the original binding.
type Config struct {
	// Gpios is the buzzer's output line number. Required.
	Gpios *uint32 `json:"gpios"`

	// DefaultState is "on" to energize the buzzer at attachment; any
	// other non-empty value means off. Empty leaves the line untouched.
	DefaultState string `json:"default-state,omitempty"`
}

// LoadConfig parses a JSON configuration blob
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads and parses a configuration file
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(data)
}
