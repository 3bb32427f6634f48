package generator

import (
	"context"

	"github.com/shouni/gemini-media-kit/pkg/domain"
	"google.golang.org/genai"
)

// GenerativeBackend は Gemini API との通信を抽象化するインターフェースです。
type GenerativeBackend interface {
	// GenerateContent は画像生成（generateContent）を1回実行します。
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	// GenerateVideos は動画生成ジョブを投入し、非同期ジョブのハンドルを返します。
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	// PollVideosOperation は直前のハンドルをキーにジョブ状態を取得し直します。
	PollVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
	// AccessToken は生成結果の取得に使うアクセストークン（APIキー）を返します。
	AccessToken() string
}

// CredentialSource は従量課金ティアの実行コンテキストを保証する機構です。
// 環境側にそうした仕組みがない場合は NoopCredentialSource を使います。
type CredentialSource interface {
	// HasCredential は利用可能な有料クレデンシャルが選択済みかを返します。
	HasCredential(ctx context.Context) bool
	// RequestCredential は対話的な選択フローを起動し、完了まで待機します。
	RequestCredential(ctx context.Context) error
}

// ReferencePreparer は参照画像URLを genai.Part へ解決するインターフェースです。
// pkg/adapters の ReferenceResolver が標準実装です。
type ReferencePreparer interface {
	PreparePart(ctx context.Context, rawURL string) (*genai.Part, error)
}

// MediaGenerator はプレゼンテーション層が利用する統合窓口です。
type MediaGenerator interface {
	GenerateImages(ctx context.Context, count int, req domain.GenerationRequest) ([]domain.GeneratedAsset, error)
	GenerateVideo(ctx context.Context, req domain.VideoGenerationRequest) (*domain.GeneratedAsset, error)
}
