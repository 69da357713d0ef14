package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "USAGE_ALERT"

// Directory lookup strategies supported by the recipient resolver. Both are
// live across deployments, so the order is configuration, not code.
const (
	StrategySubjectKey  = "subject_key"  // GET /customers?subjectKey=<raw key>
	StrategyCustomerKey = "customer_key" // GET /customers/<key with separators stripped>
)

type Config struct {
	HTTP       HTTPConfig      `mapstructure:"http"`
	OpenMeter  OpenMeterConfig `mapstructure:"openmeter"`
	Resend     ResendConfig    `mapstructure:"resend"`
	Sender     string          `mapstructure:"sender"`
	FallbackTo string          `mapstructure:"fallback_to"`
	Resolver   ResolverConfig  `mapstructure:"resolver"`
	Log        LogConfig       `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type OpenMeterConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ResendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ResolverConfig struct {
	// Strategies is the ordered list of directory lookup attempts.
	Strategies []string `mapstructure:"strategies"`
	// EmailFields is the ordered list of customer fields to extract the
	// address from once a record is found.
	EmailFields []string `mapstructure:"email_fields"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Loader reads configuration from the environment and an optional file, and
// watches the file for changes.
type Loader struct {
	viper *viper.Viper
	path  string
}

func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	}

	return &Loader{viper: v, path: path}
}

// Load decodes and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", l.path, err)
		}
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Watch re-decodes the config file on every change and hands valid results
// to onChange. Invalid intermediate states are dropped silently, keeping the
// last good configuration in effect.
func (l *Loader) Watch(onChange func(*Config)) {
	if l.path == "" {
		return
	}

	l.viper.OnConfigChange(func(fsnotify.Event) {
		cfg, err := l.Load()
		if err != nil {
			return
		}
		onChange(cfg)
	})
	l.viper.WatchConfig()
}

// LoadConfig loads configuration from the environment only.
func LoadConfig() (*Config, error) {
	return NewLoader("").Load()
}

func (c *Config) Validate() error {
	if c.OpenMeter.APIKey == "" {
		return errors.New("openmeter.api_key is required")
	}
	if c.Resend.APIKey == "" {
		return errors.New("resend.api_key is required")
	}
	if c.FallbackTo == "" {
		return errors.New("fallback_to is required")
	}
	if len(c.Resolver.Strategies) == 0 {
		return errors.New("resolver.strategies must not be empty")
	}
	for _, s := range c.Resolver.Strategies {
		if s != StrategySubjectKey && s != StrategyCustomerKey {
			return fmt.Errorf("unknown resolver strategy %q", s)
		}
	}
	if len(c.Resolver.EmailFields) == 0 {
		return errors.New("resolver.email_fields must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":5000")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("openmeter.base_url", "https://openmeter.cloud/api/v1")
	v.SetDefault("openmeter.timeout", 10*time.Second)

	v.SetDefault("resend.base_url", "https://api.resend.com")
	v.SetDefault("resend.timeout", 10*time.Second)

	v.SetDefault("sender", "Nabrah <no-reply@nabrah.ai>")

	// Secrets and addresses have no sane defaults, but AutomaticEnv only
	// binds keys viper already knows about.
	v.SetDefault("openmeter.api_key", "")
	v.SetDefault("resend.api_key", "")
	v.SetDefault("fallback_to", "")

	v.SetDefault("resolver.strategies", []string{StrategySubjectKey, StrategyCustomerKey})
	v.SetDefault("resolver.email_fields", []string{"primaryEmail", "metadata.email"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
