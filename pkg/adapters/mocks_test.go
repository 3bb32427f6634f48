package adapters

import (
	"context"
	"io"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// --- Mocks ---

type mockHTTPClient struct {
	httpkit.ClientInterface
	data  []byte
	err   error
	calls int
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	return m.data, m.err
}

type mockReader struct {
	openFunc func(ctx context.Context, uri string) (io.ReadCloser, error)
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, uri)
	}
	return nil, nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

type mockCache struct {
	data map[string]any
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]any)}
}

func (m *mockCache) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	m.data[key] = value
}

// mockFileClient は gemini.GenerativeModel のうち File API だけを実装するのだ。
// 他のメソッドは埋め込みで解決しておく（呼ばれたら nil panic で気付ける）。
type mockFileClient struct {
	gemini.GenerativeModel
	uploadCalled bool
	deleteCalled bool
	lastFileName string
	uploadErr    error
}

func (m *mockFileClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	m.uploadCalled = true
	if m.uploadErr != nil {
		return "", "", m.uploadErr
	}
	return "https://generativelanguage.googleapis.com/v1beta/files/new-file-id", "files/new-file-id", nil
}

func (m *mockFileClient) DeleteFile(ctx context.Context, name string) error {
	m.deleteCalled = true
	m.lastFileName = name
	return nil
}
