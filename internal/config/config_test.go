package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FOCUSERP_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Storage.User)
	require.Equal(t, ":8787", cfg.Server.Addr)
	require.Equal(t, "gemini-1.5-flash-latest", cfg.LLM.GeminiModel)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAIModel)
	require.True(t, cfg.Reminders.Enabled)
	require.Equal(t, "1m", cfg.Reminders.Interval)
	require.Equal(t, "BR", cfg.Calendar.Country)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("FOCUSERP_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Server.Addr = ":9999"
	cfg.Calendar.State = "SP"
	cfg.LLM.GeminiModel = "gemini-2.0-flash"
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", got.Server.Addr)
	require.Equal(t, "SP", got.Calendar.State)
	require.Equal(t, "gemini-2.0-flash", got.LLM.GeminiModel)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("FOCUSERP_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	t.Setenv("FOCUSERP_SERVER_ADDR", ":7000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Server.Addr)
}

func TestKeyResolutionPrefersEnv(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "from-env")

	llm := LLMConfig{GeminiAPIKeyEnv: "TEST_GEMINI_KEY", GeminiAPIKey: "from-file"}
	require.Equal(t, "from-env", llm.GeminiKey())

	llm.GeminiAPIKeyEnv = "TEST_GEMINI_KEY_UNSET"
	require.Equal(t, "from-file", llm.GeminiKey())

	openai := LLMConfig{OpenAIAPIKeyEnv: "TEST_OPENAI_KEY_UNSET", OpenAIAPIKey: " sk-abc "}
	require.Equal(t, "sk-abc", openai.OpenAIKey())
}
