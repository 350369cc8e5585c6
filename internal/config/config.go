package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage   StorageConfig
	LLM       LLMConfig
	Server    ServerConfig
	Reminders RemindersConfig
	Calendar  CalendarConfig
	Logging   LoggingConfig
}

// StorageConfig locates the per-user JSON documents.
type StorageConfig struct {
	Dir  string
	User string
}

// LLMConfig holds remote text-understanding settings. Keys are resolved
// from the named env vars first, then from the config values.
type LLMConfig struct {
	GeminiAPIKeyEnv string `mapstructure:"gemini_api_key_env"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	GeminiModel     string `mapstructure:"gemini_model"`
	OpenAIAPIKeyEnv string `mapstructure:"openai_api_key_env"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	OpenAIModel     string `mapstructure:"openai_model"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string
}

// RemindersConfig controls the alarm sweep.
type RemindersConfig struct {
	Enabled  bool
	Interval string
}

// CalendarConfig scopes the holiday lookup.
type CalendarConfig struct {
	Country string
	State   string
}

// LoggingConfig selects slog level and format.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from file and env. Env var overrides use
// prefix FOCUSERP_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("storage.dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "focuserp"))
	v.SetDefault("storage.user", "default")
	v.SetDefault("llm.gemini_api_key_env", "GOOGLE_GEMINI_API_KEY")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.gemini_model", "gemini-1.5-flash-latest")
	v.SetDefault("llm.openai_api_key_env", "OPENAI_API_KEY")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_model", "gpt-4o-mini")
	v.SetDefault("server.addr", ":8787")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.interval", "1m")
	v.SetDefault("calendar.country", "BR")
	v.SetDefault("calendar.state", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FOCUSERP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "focuserp"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FOCUSERP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. API keys land in plain text; prefer the env vars.
func Save(cfg Config) error {
	path := os.Getenv("FOCUSERP_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "focuserp", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("storage.user", cfg.Storage.User)
	v.Set("llm.gemini_api_key_env", cfg.LLM.GeminiAPIKeyEnv)
	v.Set("llm.gemini_api_key", cfg.LLM.GeminiAPIKey)
	v.Set("llm.gemini_model", cfg.LLM.GeminiModel)
	v.Set("llm.openai_api_key_env", cfg.LLM.OpenAIAPIKeyEnv)
	v.Set("llm.openai_api_key", cfg.LLM.OpenAIAPIKey)
	v.Set("llm.openai_model", cfg.LLM.OpenAIModel)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("reminders.enabled", cfg.Reminders.Enabled)
	v.Set("reminders.interval", cfg.Reminders.Interval)
	v.Set("calendar.country", cfg.Calendar.Country)
	v.Set("calendar.state", cfg.Calendar.State)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// GeminiKey resolves the Gemini credential, env var first.
func (c LLMConfig) GeminiKey() string {
	if env := strings.TrimSpace(c.GeminiAPIKeyEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.GeminiAPIKey)
}

// OpenAIKey resolves the OpenAI credential, env var first.
func (c LLMConfig) OpenAIKey() string {
	if env := strings.TrimSpace(c.OpenAIAPIKeyEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.OpenAIAPIKey)
}
