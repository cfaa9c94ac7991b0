package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	config, err := InitializeConfig()
	require.NoError(t, err)
	return config
}

func TestInitializeConfigDefaults(t *testing.T) {
	config := defaultConfig(t)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "prefixes.yaml", config.Data.PrefixesFile)
	assert.Equal(t, "contacts.yaml", config.Data.ContactsFile)
	assert.Equal(t, ",", config.Export.Delimiter)
	assert.Equal(t, "Outstanding", config.Export.Sheet)
	assert.False(t, config.Reminder.AIEnabled)
	assert.Equal(t, 30, config.Reminder.TimeoutSeconds)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("ARLEDGER_LOG_LEVEL", "debug")
	t.Setenv("ARLEDGER_DATA_PREFIXES_FILE", "custom.yaml")

	config := defaultConfig(t)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "custom.yaml", config.Data.PrefixesFile)
}

func TestInitializeConfigInvalidLogLevel(t *testing.T) {
	t.Setenv("ARLEDGER_LOG_LEVEL", "chatty")

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigInvalidFormat(t *testing.T) {
	t.Setenv("ARLEDGER_LOG_FORMAT", "xml")

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigAIRequiresKey(t *testing.T) {
	t.Setenv("ARLEDGER_REMINDER_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigGeminiKeyFromEnv(t *testing.T) {
	t.Setenv("ARLEDGER_REMINDER_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "test-key")

	config := defaultConfig(t)
	assert.Equal(t, "test-key", config.Reminder.APIKey)
}

func TestConfigureLogging(t *testing.T) {
	config := defaultConfig(t)
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLogging(config)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLoggingFallsBackOnBadLevel(t *testing.T) {
	config := defaultConfig(t)
	config.Log.Level = "nonsense"

	logger := ConfigureLogging(config)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
