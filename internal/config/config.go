package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	Secret     string `mapstructure:"secret"`
	LogLevel   string `mapstructure:"log_level"`

	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`

	Data    DataConfig    `mapstructure:"data"`
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
	Limits  LimitsConfig  `mapstructure:"limits"`
}

// DataConfig points at replacement datasets; empty paths use the embedded ones.
type DataConfig struct {
	RoomsPath string `mapstructure:"rooms_path"`
	UsersPath string `mapstructure:"users_path"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	SpeakerInterval time.Duration `mapstructure:"speaker_interval"`
	ToastTTL        time.Duration `mapstructure:"toast_ttl"`
	ResolveLatency  time.Duration `mapstructure:"resolve_latency"`
	Breakpoint      int           `mapstructure:"breakpoint"`
}

type LimitsConfig struct {
	APIRPS       int           `mapstructure:"api_rps"`
	CreateRooms  int           `mapstructure:"create_rooms"`
	CreateWindow time.Duration `mapstructure:"create_window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "nexvox-dev-secret")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 4096)
	v.SetDefault("ping_period", "54s")

	v.SetDefault("data.rooms_path", "")
	v.SetDefault("data.users_path", "")
	v.SetDefault("storage.path", "./var/nexvox.json")

	v.SetDefault("session.speaker_interval", "3s")
	v.SetDefault("session.toast_ttl", "5s")
	v.SetDefault("session.resolve_latency", "500ms")
	v.SetDefault("session.breakpoint", 1024)

	v.SetDefault("limits.api_rps", 50)
	v.SetDefault("limits.create_rooms", 5)
	v.SetDefault("limits.create_window", "1m")
}

// Load reads config/config.<CONFIG_ENV>.yaml (dev by default) over the defaults.
// Every key can also be set through the environment as NEXVOX_<KEY>, e.g. NEXVOX_SESSION_TOAST_TTL.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	v.SetEnvPrefix("nexvox")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Msg("config ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Secret == "" {
		return fmt.Errorf("secret is required")
	}
	if c.Session.SpeakerInterval <= 0 {
		return fmt.Errorf("session.speaker_interval must be positive")
	}
	if c.Session.ToastTTL <= 0 {
		return fmt.Errorf("session.toast_ttl must be positive")
	}
	if c.Session.ResolveLatency < 0 {
		return fmt.Errorf("session.resolve_latency must not be negative")
	}
	return nil
}
