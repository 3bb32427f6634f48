package generator

import (
	"context"
	"fmt"
	"log/slog"
)

// NoopCredentialSource はクレデンシャルが外部で設定済みの環境向けの実装です。
// ホスト環境に選択フローがない場合、ゲートは何もしません。
type NoopCredentialSource struct{}

func (NoopCredentialSource) HasCredential(ctx context.Context) bool { return true }

func (NoopCredentialSource) RequestCredential(ctx context.Context) error { return nil }

// ensureAuthorized は従量課金ティアの呼び出し前に実行コンテキストを保証します。
// 選択済みなら何もせず、未選択なら対話的な選択フローを起動して完了を待ちます。
// 並行呼び出しで選択フローが重複起動されることは許容されます（重複排除はしません）。
func (g *GeminiMediaGenerator) ensureAuthorized(ctx context.Context) error {
	if g.credentials.HasCredential(ctx) {
		return nil
	}

	slog.InfoContext(ctx, "有料ティアのクレデンシャルが未選択のため選択フローを開始します")
	if err := g.credentials.RequestCredential(ctx); err != nil {
		return fmt.Errorf("クレデンシャル選択に失敗しました: %w", err)
	}
	return nil
}
