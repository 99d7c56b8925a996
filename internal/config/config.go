package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses yaml duration strings like "5s" or "500ms"; bare
// integers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Std converts to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the root configuration for a server instance.
type Config struct {
	Server ServerConfig `yaml:"server"`
	FX     FXConfig     `yaml:"fx"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	HTTPPort  int    `yaml:"http_port"`
	HTTPSPort int    `yaml:"https_port"`
	CertFile  string `yaml:"cert_file"`
	KeyFile   string `yaml:"key_file"`
}

// FXConfig holds the external rate provider settings.
type FXConfig struct {
	BaseURL  string   `yaml:"base_url"`
	Timeout  Duration `yaml:"timeout"`
	GoldRate float64  `yaml:"gold_rate"`
}

// GameConfig holds room capacity bounds.
type GameConfig struct {
	MinPlayers int `yaml:"min_players"`
	MaxPlayers int `yaml:"max_players"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.HTTPSPort == 0 {
		c.Server.HTTPSPort = 8443
	}
	if c.FX.BaseURL == "" {
		c.FX.BaseURL = "https://api.exchangerate-api.com/v4/latest"
	}
	if c.FX.Timeout == 0 {
		c.FX.Timeout = Duration(5 * time.Second)
	}
	if c.FX.GoldRate == 0 {
		c.FX.GoldRate = 3200
	}
	if c.Game.MinPlayers == 0 {
		c.Game.MinPlayers = 2
	}
	if c.Game.MaxPlayers == 0 {
		c.Game.MaxPlayers = 6
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration for impossible values.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.FX.Timeout <= 0 {
		return fmt.Errorf("fx.timeout must be positive: %s", c.FX.Timeout.Std())
	}
	if c.Game.MinPlayers < 2 {
		return fmt.Errorf("game.min_players must be at least 2: %d", c.Game.MinPlayers)
	}
	if c.Game.MaxPlayers < c.Game.MinPlayers {
		return fmt.Errorf("game.max_players %d below game.min_players %d", c.Game.MaxPlayers, c.Game.MinPlayers)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level unknown: %q", c.Log.Level)
	}
	return nil
}
