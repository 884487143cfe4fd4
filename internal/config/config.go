package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Backend  BackendConfig
	Protocol ProtocolConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host     string `default:"localhost"`
	Port     string `default:"5432"`
	User     string `default:"simpleprefix"`
	Password string `default:"simpleprefix"`
	Name     string `default:"permissions"`
	SSLMode  string `default:"disable"`

	MaxOpenConns   int           `split_words:"true" default:"4"`
	ConnectTimeout time.Duration `split_words:"true" default:"5s"`
}

type ServerConfig struct {
	Addr string `default:":8080"`
}

type DataConfig struct {
	Dir          string `default:"./data"`
	GroupsFile   string `split_words:"true" default:"groups.yml"`
	SettingsFile string `split_words:"true" default:"config.yml"`
}

// BackendConfig включает внешний бэкенд прав (Postgres).
// Выбор делается один раз при старте.
type BackendConfig struct {
	Enabled bool `default:"false"`
}

type ProtocolConfig struct {
	Version string `default:"1.20.4"`
}

type LogConfig struct {
	Format string `default:"json"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	sections := []struct {
		prefix string
		target interface{}
	}{
		{"DB", &cfg.Database},
		{"HTTP", &cfg.Server},
		{"DATA", &cfg.Data},
		{"BACKEND", &cfg.Backend},
		{"PROTOCOL", &cfg.Protocol},
		{"LOG", &cfg.Log},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.target); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.prefix, err)
		}
	}

	return cfg, nil
}
