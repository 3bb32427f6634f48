package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/shouni/gemini-media-kit/pkg/domain"
)

// GeminiMediaGenerator は画像バッチ生成と動画ジョブ駆動の両方を担当する
// オーケストレーション本体です。バックエンド通信・クレデンシャル取得・
// リモート参照解決はすべて注入された依存に委譲します。
type GeminiMediaGenerator struct {
	backend      GenerativeBackend
	credentials  CredentialSource
	preparer     ReferencePreparer
	pollInterval time.Duration
}

// NewGeminiMediaGenerator は依存関係を注入して GeminiMediaGenerator を初期化します。
// credentials に nil を渡した場合はゲートなし（NoopCredentialSource）で動作し、
// preparer は省略可能です（省略時はリモート参照URLを扱えません）。
func NewGeminiMediaGenerator(backend GenerativeBackend, credentials CredentialSource, preparer ReferencePreparer) (*GeminiMediaGenerator, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend (GenerativeBackend) is required")
	}
	if credentials == nil {
		credentials = NoopCredentialSource{}
	}

	return &GeminiMediaGenerator{
		backend:      backend,
		credentials:  credentials,
		preparer:     preparer,
		pollInterval: defaultPollInterval,
	}, nil
}

// validateImageRequest は組み立て前の最小限の検証を行います。
// これ以上の検証は行わず、不正なペイロードの拒否はバックエンドに委ねます。
func validateImageRequest(req domain.GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" && req.ContextImage == nil {
		return ErrPromptRequired
	}
	if len(req.ReferenceImages) > domain.MaxReferenceImages {
		return fmt.Errorf("%w: %d枚 (上限 %d枚)", ErrTooManyReferences, len(req.ReferenceImages), domain.MaxReferenceImages)
	}
	return nil
}

var _ MediaGenerator = (*GeminiMediaGenerator)(nil)
