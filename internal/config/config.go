package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aurelienperez/grease-the-groove/internal/models"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Tailscale   TailscaleConfig   `yaml:"tailscale"`
	Progression ProgressionConfig `yaml:"progression"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// ProgressionConfig is the configurable global progression profile.
// Absent fields fall back to the built-in defaults.
type ProgressionConfig struct {
	TargetRIRMin               *int     `yaml:"target_rir_min"`
	TargetRIRMax               *int     `yaml:"target_rir_max"`
	MaxWeeklyVolumeIncreasePct *float64 `yaml:"max_weekly_volume_increase_pct"`
	PainWarn                   *int     `yaml:"pain_warn"`
	PainReduce                 *int     `yaml:"pain_reduce"`
	DeloadDays                 *int     `yaml:"deload_days"`
	DeloadVolumeFactor         *float64 `yaml:"deload_volume_factor"`
	FreezeDaysIfPain           *int     `yaml:"freeze_days_if_pain"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Profile resolves the configured progression thresholds against the
// built-in defaults.
func (p ProgressionConfig) Profile() models.ProgressionProfile {
	profile := models.DefaultProfile()
	if p.TargetRIRMin != nil {
		profile.TargetRIRMin = *p.TargetRIRMin
	}
	if p.TargetRIRMax != nil {
		profile.TargetRIRMax = *p.TargetRIRMax
	}
	if p.MaxWeeklyVolumeIncreasePct != nil {
		profile.MaxWeeklyVolumeIncreasePct = *p.MaxWeeklyVolumeIncreasePct
	}
	if p.PainWarn != nil {
		profile.PainWarn = *p.PainWarn
	}
	if p.PainReduce != nil {
		profile.PainReduce = *p.PainReduce
	}
	if p.DeloadDays != nil {
		profile.DeloadDays = *p.DeloadDays
	}
	if p.DeloadVolumeFactor != nil {
		profile.DeloadVolumeFactor = *p.DeloadVolumeFactor
	}
	if p.FreezeDaysIfPain != nil {
		profile.FreezeDaysIfPain = *p.FreezeDaysIfPain
	}
	return profile
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix GTG_ and underscore-separated
// paths:
//
//	GTG_SERVER_HOST, GTG_SERVER_PORT,
//	GTG_DB_HOST, GTG_DB_PORT, GTG_DB_NAME,
//	GTG_DB_USER, GTG_DB_PASSWORD, GTG_DB_SSLMODE,
//	GTG_AUTH_API_KEY,
//	GTG_TS_ENABLED, GTG_TS_HOSTNAME, GTG_TS_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GTG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GTG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GTG_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("GTG_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("GTG_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("GTG_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("GTG_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("GTG_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("GTG_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GTG_TS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("GTG_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("GTG_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}

	profile := c.Progression.Profile()
	if problems := profile.Validate(); len(problems) > 0 {
		return fmt.Errorf("progression: %s", problems[0])
	}
	return nil
}
