package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/gemini-media-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// GenerateImages は count 件の構造的に同一な生成リクエストを並行発行し、
// すべて成功した場合のみ結果を返します。1件でも失敗するとバッチ全体が
// *BatchGenerationError で失敗し、部分的な結果は返しません。
// ユーザーにはバッチが1つの視覚セットとして提示されるため、
// 欠けたまま成功扱いにはしない方針です。
func (g *GeminiMediaGenerator) GenerateImages(ctx context.Context, count int, req domain.GenerationRequest) ([]domain.GeneratedAsset, error) {
	if count <= 0 {
		return nil, fmt.Errorf("生成枚数は正の整数を指定してください: %d", count)
	}
	if err := validateImageRequest(req); err != nil {
		return nil, err
	}

	model := imageModelFor(req.Tier)

	// 上位モデルは従量課金ティアのため、バッチ全体で1回だけゲートを通す
	if isMeteredImageModel(model) {
		if err := g.ensureAuthorized(ctx); err != nil {
			return nil, err
		}
	}

	parts := g.assembleImageParts(ctx, req)
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	cfg := buildImageConfig(req, model)

	slog.InfoContext(ctx, "画像バッチ生成を開始します",
		"model", model, "count", count, "ratio", req.RatioString(), "tier", string(req.Tier))

	assets := make([]domain.GeneratedAsset, count)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		eg.Go(func() error {
			resp, err := g.backend.GenerateContent(egCtx, model, contents, cfg)
			if err != nil {
				return fmt.Errorf("画像生成リクエストに失敗しました: %w", err)
			}
			asset, err := extractImageAsset(resp)
			if err != nil {
				return err
			}
			asset.Prompt = req.Prompt
			asset.Ratio = req.RatioString()
			if req.Ratio == domain.RatioCustom {
				asset.Width = req.Width
				asset.Height = req.Height
			}
			assets[i] = *asset
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		slog.ErrorContext(ctx, "画像バッチ生成に失敗しました", "model", model, "count", count, "error", err)
		return nil, &BatchGenerationError{Count: count, Cause: err}
	}

	return assets, nil
}

// extractImageAsset は応答のコンテンツパーツを順に走査し、最初に見つかった
// インライン画像を資産参照へ変換します。見つからなければ ErrNoImageData です。
func extractImageAsset(resp *genai.GenerateContentResponse) (*domain.GeneratedAsset, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: 応答に候補がありません", ErrNoImageData)
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = defaultImageMIME
				}
				return &domain.GeneratedAsset{
					Data:      part.InlineData.Data,
					MIMEType:  mimeType,
					CreatedAt: time.Now(),
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("%w (FinishReason: %s)", ErrNoImageData, candidate.FinishReason)
	}

	return nil, ErrNoImageData
}
