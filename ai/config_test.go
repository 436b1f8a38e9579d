package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig(WithAPIKey("test-key"))

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenerationModel)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithAPIKey("k"),
		WithEmbeddingModel("text-embedding-005"),
		WithGenerationModel("gemini-2.5-pro"),
	)

	assert.Equal(t, "text-embedding-005", cfg.EmbeddingModel)
	assert.Equal(t, "gemini-2.5-pro", cfg.GenerationModel)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("k"))
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing API key", func(t *testing.T) {
		cfg := NewConfig()
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("k"), WithEmbeddingModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing generation model", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("k"), WithGenerationModel(""))
		assert.Error(t, cfg.Validate())
	})
}
