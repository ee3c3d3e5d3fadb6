// Package config reads process configuration from the environment, after
// loading an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything cmd/api and cmd/coach need to wire the pipeline.
type Config struct {
	Port        string
	Environment string

	LLMBaseURL       string
	LLMAPIKey        string
	LLMModel         string
	LLMFallbackModel string
	LLMTimeout       time.Duration
	UseMockLLM       bool

	TranscribeURL     string
	UseMockTranscribe bool

	DatasetPath string
}

// Defaults mirror a local llama.cpp / Ollama style OpenAI-compatible server.
const (
	DefaultPort             = "8080"
	DefaultLLMBaseURL       = "http://localhost:8000/v1/"
	DefaultLLMModel         = "microsoft/phi-2"
	DefaultLLMFallbackModel = "TinyLlama/TinyLlama-1.1B-Chat-v1.0"
	DefaultLLMTimeout       = 60 * time.Second
	DefaultDatasetPath      = "sales_calls.xlsx"
)

// Load reads .env (if present) and then the environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...) // missing .env is fine

	cfg := Config{
		Port:              envOr("PORT", DefaultPort),
		Environment:       envOr("ENVIRONMENT", "local"),
		LLMBaseURL:        envOr("LLM_BASE_URL", DefaultLLMBaseURL),
		LLMAPIKey:         os.Getenv("LLM_API_KEY"),
		LLMModel:          envOr("LLM_MODEL", DefaultLLMModel),
		LLMFallbackModel:  envOr("LLM_FALLBACK_MODEL", DefaultLLMFallbackModel),
		LLMTimeout:        DefaultLLMTimeout,
		TranscribeURL:     os.Getenv("TRANSCRIBE_URL"),
		DatasetPath:       envOr("DATASET_PATH", DefaultDatasetPath),
		UseMockLLM:        envBool("USE_MOCK_LLM"),
		UseMockTranscribe: envBool("USE_MOCK_TRANSCRIBE"),
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("LLM_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("LLM_TIMEOUT must be positive, got %s", d)
		}
		cfg.LLMTimeout = d
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	return b
}
