package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiBackend は google.golang.org/genai の公式クライアントで
// GenerativeBackend を実装します。
type GeminiBackend struct {
	client *genai.Client
	apiKey string
}

// NewGeminiBackend は Gemini API キーからバックエンドを初期化します。
func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	return &GeminiBackend{client: client, apiKey: key}, nil
}

func (b *GeminiBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return b.client.Models.GenerateContent(ctx, model, contents, config)
}

func (b *GeminiBackend) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return b.client.Models.GenerateVideos(ctx, model, prompt, image, config)
}

func (b *GeminiBackend) PollVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return b.client.Operations.GetVideosOperation(ctx, op, nil)
}

// AccessToken は動画URIへ付与するトークンを返します。リクエストに使った
// APIキーと同一のものです。
func (b *GeminiBackend) AccessToken() string {
	return b.apiKey
}

var _ GenerativeBackend = (*GeminiBackend)(nil)
