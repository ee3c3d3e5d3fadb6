package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LLM_MODEL", "LLM_FALLBACK_MODEL", "LLM_TIMEOUT", "USE_MOCK_LLM", "LLM_BASE_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, DefaultPort, cfg.Port)
	require.Equal(t, DefaultLLMModel, cfg.LLMModel)
	require.Equal(t, DefaultLLMFallbackModel, cfg.LLMFallbackModel)
	require.Equal(t, DefaultLLMTimeout, cfg.LLMTimeout)
	require.Equal(t, DefaultLLMBaseURL, cfg.LLMBaseURL)
	require.False(t, cfg.UseMockLLM)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("USE_MOCK_LLM", "true")
	t.Setenv("USE_MOCK_TRANSCRIBE", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 15*time.Second, cfg.LLMTimeout)
	require.True(t, cfg.UseMockLLM)
	require.True(t, cfg.UseMockTranscribe)
}

func TestLoadDotEnvFile(t *testing.T) {
	t.Setenv("LLM_MODEL", "")
	os.Unsetenv("LLM_MODEL") // godotenv never overrides a variable that is already set
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LLM_MODEL=qwen2.5-1.5b\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "qwen2.5-1.5b", cfg.LLMModel)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)

	t.Setenv("LLM_TIMEOUT", "-1s")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
