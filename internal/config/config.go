// Package config loads the swarmctl configuration file.
//
// Configuration is optional: every field has a working default, so the tool
// runs with no file at all. A YAML file can override the serial port and
// baud rate per device and the log level.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultBaud is the data rate both device families run at.
const DefaultBaud = 115200

// DeviceConfig holds the serial settings for one device.
type DeviceConfig struct {
	Port string `yaml:"port,omitempty"`
	Baud int    `yaml:"baud,omitempty"`
}

// Config represents the entire configuration file.
type Config struct {
	Lightswarm DeviceConfig `yaml:"lightswarm,omitempty"`
	Strip      DeviceConfig `yaml:"strip,omitempty"`
	LogLevel   string       `yaml:"log_level,omitempty"`
}

// DefaultPort returns the USB serial port the lighting hardware usually
// enumerates on for this platform.
func DefaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM4"
	case "darwin":
		return "/dev/tty.usbmodem1101"
	default:
		return "/dev/ttyUSB0"
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Lightswarm: DeviceConfig{Port: DefaultPort(), Baud: DefaultBaud},
		Strip:      DeviceConfig{Port: DefaultPort(), Baud: DefaultBaud},
	}
}

// Load reads the YAML file at path. Fields the file leaves unset keep their
// defaults. An empty path or a missing file yields the full default
// configuration; only unreadable or malformed files are errors.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Lightswarm.Port == "" {
		c.Lightswarm.Port = DefaultPort()
	}
	if c.Lightswarm.Baud == 0 {
		c.Lightswarm.Baud = DefaultBaud
	}
	if c.Strip.Port == "" {
		c.Strip.Port = DefaultPort()
	}
	if c.Strip.Baud == 0 {
		c.Strip.Baud = DefaultBaud
	}
}
