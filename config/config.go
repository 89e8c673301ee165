package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/angeloszaimis/ping-url/internal/prober"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// EnvPrefix is prepended to every key when reading the environment, the way
// GitHub Actions exposes action inputs.
const EnvPrefix = "INPUT"

const (
	KeyURL         = "url"
	KeyDelay       = "delay"
	KeyMaxTrials   = "max_trials"
	KeyTimeout     = "timeout"
	KeyLogLevel    = "log_level"
	KeyEnvironment = "environment"
)

// Flag names used when binding a flag set.
var flagKeys = map[string]string{
	"url":         KeyURL,
	"delay":       KeyDelay,
	"max-trials":  KeyMaxTrials,
	"timeout":     KeyTimeout,
	"log-level":   KeyLogLevel,
	"environment": KeyEnvironment,
}

type Config struct {
	URL         string `mapstructure:"url"`
	Delay       int    `mapstructure:"delay"`
	MaxTrials   int    `mapstructure:"max_trials"`
	Timeout     string `mapstructure:"timeout"`
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"environment"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// RegisterFlags adds the command-line flags understood by Load to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file path")
	fs.String("url", "", "URL to probe (env INPUT_URL)")
	fs.Int("delay", 5, "seconds to wait after a failed trial (env INPUT_DELAY)")
	fs.Int("max-trials", 10, "number of failed trials before giving up (env INPUT_MAX_TRIALS)")
	fs.String("timeout", "10s", "timeout for a single attempt (env INPUT_TIMEOUT)")
	fs.String("log-level", LogLevelInfo, "log level: debug, info, warn, error (env INPUT_LOG_LEVEL)")
	fs.String("environment", EnvDev, "environment: dev, staging, prod (env INPUT_ENVIRONMENT)")
}

// Load reads the configuration. Precedence, highest first: flags that were
// set on the command line, INPUT_* environment variables, the config file,
// defaults. A "config" flag in flags names an explicit file to read.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyURL, "")
	v.SetDefault(KeyDelay, 5)
	v.SetDefault(KeyMaxTrials, 10)
	v.SetDefault(KeyTimeout, "10s")
	v.SetDefault(KeyLogLevel, LogLevelInfo)
	v.SetDefault(KeyEnvironment, EnvDev)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configFile := ""
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %q: %w", name, err)
				}
			}
		}

		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("ping-url")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks everything but the URL. A bad URL is not a configuration
// error: the probe reports it on every trial.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Delay, validation.Min(0)),
		validation.Field(&c.MaxTrials, validation.Min(0)),
		validation.Field(&c.Timeout,
			validation.Required,
			validation.By(validateTimeout),
		),
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&c.Environment,
			validation.Required,
			validation.In(EnvDev, EnvStaging, EnvProd),
		),
	)
}

// Probe converts the loaded configuration into the prober's input.
func (c *Config) Probe() prober.Config {
	// Validate has already rejected unparseable timeouts.
	timeout, _ := time.ParseDuration(c.Timeout)

	return prober.Config{
		URL:       c.URL,
		Delay:     time.Duration(c.Delay) * time.Second,
		MaxTrials: c.MaxTrials,
		Timeout:   timeout,
	}
}

func validateTimeout(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 500ms, 10s, 1m)")
	}

	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be greater than zero")
	}

	return nil
}
