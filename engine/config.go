package engine

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Embedding provider identifiers accepted in configuration.
const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
	ProviderONNX   = "onnx"
)

// DefaultChatModel is the Claude model used when none is configured.
const DefaultChatModel = "claude-sonnet-4-20250514"

// Config holds process startup configuration. Credentials a configured
// provider needs are required: Validate fails before the process becomes
// ready rather than at first request.
type Config struct {
	// EmbeddingProvider selects the embedder: mock, openai, or onnx.
	EmbeddingProvider string

	// OpenAI-compatible embedding settings (provider "openai").
	EmbeddingAPIKey  string
	EmbeddingBaseURL string
	EmbeddingModel   string

	// EmbeddingDimensions is the vector size D. Defaults to 384.
	EmbeddingDimensions int

	// ONNX embedding settings (provider "onnx").
	ONNXModelPath     string
	ONNXTokenizerPath string

	// AnthropicAPIKey enables the optional chat responder when set.
	AnthropicAPIKey string

	// ChatModel is the Claude model for the responder.
	ChatModel string

	// IndexPath makes the chromem index persistent. Empty keeps it in
	// memory.
	IndexPath string
}

// FromEnv builds a Config from MEMBANK_* environment variables, applying
// defaults for everything optional.
func FromEnv() *Config {
	cfg := &Config{
		EmbeddingProvider:   getenv("MEMBANK_EMBEDDING_PROVIDER", ProviderMock),
		EmbeddingAPIKey:     os.Getenv("MEMBANK_EMBEDDING_API_KEY"),
		EmbeddingBaseURL:    os.Getenv("MEMBANK_EMBEDDING_BASE_URL"),
		EmbeddingModel:      os.Getenv("MEMBANK_EMBEDDING_MODEL"),
		EmbeddingDimensions: 384,
		ONNXModelPath:       os.Getenv("MEMBANK_ONNX_MODEL_PATH"),
		ONNXTokenizerPath:   os.Getenv("MEMBANK_ONNX_TOKENIZER_PATH"),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		ChatModel:           getenv("MEMBANK_CHAT_MODEL", DefaultChatModel),
		IndexPath:           os.Getenv("MEMBANK_INDEX_PATH"),
	}

	if raw := os.Getenv("MEMBANK_EMBEDDING_DIMENSIONS"); raw != "" {
		if dims, err := strconv.Atoi(raw); err == nil && dims > 0 {
			cfg.EmbeddingDimensions = dims
		}
	}
	return cfg
}

// Validate checks that the configured providers have what they need.
func (c *Config) Validate() error {
	switch c.EmbeddingProvider {
	case ProviderMock:
		// No credentials needed.
	case ProviderOpenAI:
		if c.EmbeddingAPIKey == "" {
			return errors.New("embedding API key is required for the openai provider")
		}
		if c.EmbeddingModel == "" {
			return errors.New("embedding model is required for the openai provider")
		}
	case ProviderONNX:
		if c.ONNXModelPath == "" {
			return errors.New("ONNX model path is required for the onnx provider")
		}
	default:
		return fmt.Errorf("unknown embedding provider: %q", c.EmbeddingProvider)
	}

	if c.EmbeddingDimensions <= 0 {
		return errors.New("embedding dimensions must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
