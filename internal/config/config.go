// Package config resolves runtime settings from defaults, an optional
// recipebox.yaml file, RECIPEBOX_* environment variables, and command
// line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/recipebox/internal/imageenc"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RECIPEBOX"

// Keys shared by flags, env vars and the config file.
const (
	KeyConfig        = "config"
	KeyDataset       = "dataset"
	KeyLogLevel      = "log-level"
	KeyLogFile       = "log-file"
	KeyMaxImageBytes = "max-image-bytes"
	KeyExpanded      = "expanded"
	KeyVerbose       = "verbose"
	KeyQuiet         = "quiet"
)

// DefaultLogFile keeps diagnostics out of the interactive display.
const DefaultLogFile = "recipebox.log"

// Config holds the resolved settings.
type Config struct {
	// Dataset is a path to a JSON, YAML or TOML file. Empty means the
	// bundled dataset.
	Dataset       string
	LogLevel      logger.Level
	LogFile       string // "stderr" logs to the console
	MaxImageBytes int64
	// Expanded shows every card's ingredients by default.
	Expanded bool
}

// Load reads .env, then resolves settings. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(KeyDataset, "")
	v.SetDefault(KeyLogLevel, "normal")
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyMaxImageBytes, imageenc.DefaultMaxBytes)
	v.SetDefault(KeyExpanded, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("recipebox")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := logger.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}
	// The shorthand flags win over log-level.
	switch {
	case v.GetBool(KeyQuiet):
		level = logger.LevelOff
	case v.GetBool(KeyVerbose):
		level = logger.LevelVerbose
	}

	maxBytes := v.GetInt64(KeyMaxImageBytes)
	if maxBytes <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", KeyMaxImageBytes, maxBytes)
	}

	return &Config{
		Dataset:       v.GetString(KeyDataset),
		LogLevel:      level,
		LogFile:       v.GetString(KeyLogFile),
		MaxImageBytes: maxBytes,
		Expanded:      v.GetBool(KeyExpanded),
	}, nil
}
