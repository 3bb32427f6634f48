package generator

import (
	"context"
	"sync"
	"sync/atomic"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockBackend は GenerativeBackend のテスト用モックなのだ。
type mockBackend struct {
	generateCalls atomic.Int32
	submitCalls   atomic.Int32
	pollCalls     atomic.Int32
	token         string

	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	submitFunc   func(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	pollFunc     func(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

func (m *mockBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.generateCalls.Add(1)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents, config)
	}
	return imageResponse("image/png", []byte("fake")), nil
}

func (m *mockBackend) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	m.submitCalls.Add(1)
	if m.submitFunc != nil {
		return m.submitFunc(ctx, model, prompt, image, config)
	}
	return &genai.GenerateVideosOperation{Name: "operations/mock", Done: false}, nil
}

func (m *mockBackend) PollVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	m.pollCalls.Add(1)
	if m.pollFunc != nil {
		return m.pollFunc(ctx, op)
	}
	return op, nil
}

func (m *mockBackend) AccessToken() string {
	return m.token
}

// imageResponse はインライン画像を1つ含む応答を組み立てるヘルパーなのだ。
func imageResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "生成しました"},
					{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
				},
			},
		}},
	}
}

// videoOperation は動画ジョブハンドルを組み立てるヘルパーなのだ。
func videoOperation(name string, done bool, uri string) *genai.GenerateVideosOperation {
	op := &genai.GenerateVideosOperation{Name: name, Done: done}
	if uri != "" {
		op.Response = &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{
				{Video: &genai.Video{URI: uri, MIMEType: "video/mp4"}},
			},
		}
	}
	return op
}

// mockCredentialSource はプロセス全体の「有料キー選択済み」フラグを模倣するのだ。
type mockCredentialSource struct {
	mu           sync.Mutex
	selected     bool
	requestCalls int
	requestErr   error
}

func (m *mockCredentialSource) HasCredential(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

func (m *mockCredentialSource) RequestCredential(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCalls++
	if m.requestErr != nil {
		return m.requestErr
	}
	m.selected = true
	return nil
}

func (m *mockCredentialSource) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCalls
}

type mockPreparer struct {
	prepareFunc func(ctx context.Context, rawURL string) (*genai.Part, error)
}

func (m *mockPreparer) PreparePart(ctx context.Context, rawURL string) (*genai.Part, error) {
	if m.prepareFunc != nil {
		return m.prepareFunc(ctx, rawURL)
	}
	return nil, nil
}

// newTestGenerator はモック依存でジェネレーターを組み立てるヘルパーなのだ。
func newTestGenerator(backend GenerativeBackend, credentials CredentialSource, preparer ReferencePreparer) *GeminiMediaGenerator {
	gen, err := NewGeminiMediaGenerator(backend, credentials, preparer)
	if err != nil {
		panic(err)
	}
	return gen
}
