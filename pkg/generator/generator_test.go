package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiMediaGenerator(t *testing.T) {
	t.Run("nilチェック: バックエンドがない場合はエラーを返すのだ", func(t *testing.T) {
		_, err := NewGeminiMediaGenerator(nil, nil, nil)
		assert.Error(t, err)
	})

	t.Run("credentials 省略時は Noop で動作するのだ", func(t *testing.T) {
		gen, err := NewGeminiMediaGenerator(&mockBackend{}, nil, nil)

		require.NoError(t, err)
		assert.NoError(t, gen.ensureAuthorized(context.Background()))
		assert.Equal(t, defaultPollInterval, gen.pollInterval)
	})
}

func TestNewGeminiBackend(t *testing.T) {
	t.Run("APIキーが空の場合はエラーを返すのだ", func(t *testing.T) {
		_, err := NewGeminiBackend(context.Background(), "   ")
		assert.Error(t, err)
	})
}

func TestGeminiBackend_AccessToken(t *testing.T) {
	t.Run("リクエストに使ったAPIキーをそのまま返すのだ", func(t *testing.T) {
		backend := &GeminiBackend{apiKey: "key-123"}
		assert.Equal(t, "key-123", backend.AccessToken())
	})
}
