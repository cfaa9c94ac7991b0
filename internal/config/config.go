// Package config provides hierarchical configuration for the arledger CLI:
// defaults, an optional YAML config file, and ARLEDGER_* environment
// variables, with .env loading for local development.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		PrefixesFile string `mapstructure:"prefixes_file" yaml:"prefixes_file"`
		ContactsFile string `mapstructure:"contacts_file" yaml:"contacts_file"`
	} `mapstructure:"data" yaml:"data"`

	Export struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
		Sheet     string `mapstructure:"sheet" yaml:"sheet"`
	} `mapstructure:"export" yaml:"export"`

	Reminder struct {
		AIEnabled      bool   `mapstructure:"ai_enabled" yaml:"ai_enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // never serialized
	} `mapstructure:"reminder" yaml:"reminder"`
}

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	envOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load(".env")
		}
	})
}

// InitializeConfig builds the configuration from defaults, the optional
// config file, and environment variables, then validates it.
func InitializeConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.arledger")
	v.AddConfigPath(".arledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ARLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The Gemini key comes from the conventional unprefixed variable.
	if err := v.BindEnv("reminder.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.prefixes_file", "prefixes.yaml")
	v.SetDefault("data.contacts_file", "contacts.yaml")

	v.SetDefault("export.delimiter", ",")
	v.SetDefault("export.sheet", "Outstanding")

	v.SetDefault("reminder.ai_enabled", false)
	v.SetDefault("reminder.model", "gemini-2.0-flash")
	v.SetDefault("reminder.timeout_seconds", 30)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if len(config.Export.Delimiter) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}
	if config.Reminder.AIEnabled {
		if config.Reminder.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI reminders are enabled")
		}
		if config.Reminder.TimeoutSeconds < 1 || config.Reminder.TimeoutSeconds > 300 {
			return fmt.Errorf("reminder.timeout_seconds must be between 1 and 300, got: %d", config.Reminder.TimeoutSeconds)
		}
	}
	return nil
}

// ConfigureLogging builds a logrus logger from the configuration.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
