package generator

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/gemini-media-kit/pkg/domain"
	"github.com/shouni/gemini-media-kit/pkg/utils"
	"google.golang.org/genai"
)

// assembleImageParts はドメインの要求をバックエンドに渡すパーツ列へ組み立てます。
// 並び順は「参照画像（保持順）→ リモート参照 → 文脈画像 → プロンプト」で固定です。
// モデルは視覚的文脈と指示テキストをこの順序で重み付けするため、変更してはいけません。
func (g *GeminiMediaGenerator) assembleImageParts(ctx context.Context, req domain.GenerationRequest) []*genai.Part {
	parts := make([]*genai.Part, 0, len(req.ReferenceImages)+len(req.ReferenceURLs)+2)

	for _, ref := range req.ReferenceImages {
		parts = append(parts, inlinePart(ref))
	}

	for i, rawURL := range req.ReferenceURLs {
		if rawURL == "" {
			continue
		}
		if g.preparer == nil {
			slog.WarnContext(ctx, "ReferencePreparer が未設定のためリモート参照をスキップします", "index", i, "url", rawURL)
			continue
		}
		part, err := g.preparer.PreparePart(ctx, rawURL)
		if err != nil || part == nil {
			// 参照の解決に失敗しても生成自体は続行する（テキストと残りの画像のみ）
			slog.WarnContext(ctx, "参照画像の準備に失敗しました。スキップして続行します", "index", i, "url", rawURL, "error", err)
			continue
		}
		parts = append(parts, part)
	}

	if req.ContextImage != nil {
		parts = append(parts, inlinePart(*req.ContextImage))
	}

	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		parts = append(parts, genai.NewPartFromText(prompt))
	}

	return parts
}

// buildImageConfig は生成設定を組み立てます。ImageSize は上位モデルが
// 選択された場合のみ付与します（高速モデルはこのフィールドを受け付けません）。
func buildImageConfig(req domain.GenerationRequest, model string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: req.RatioString(),
		},
		Seed: utils.SeedToPtrInt32(req.Seed),
	}
	if isMeteredImageModel(model) {
		cfg.ImageConfig.ImageSize = string(req.Tier)
	}
	return cfg
}

// buildVideoConfig は動画生成設定を組み立てます。出力は常に1本、
// 解像度は基準ティア固定、アスペクト比は許可された2値をそのまま使います。
func buildVideoConfig(aspect domain.VideoAspect) *genai.GenerateVideosConfig {
	return &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		AspectRatio:    string(aspect),
		Resolution:     videoResolution,
	}
}

// inlinePart は ImageInput を genai.Part (InlineData) に変換します。
// MIME が未指定の場合はバイナリから判定します。
func inlinePart(in domain.ImageInput) *genai.Part {
	mimeType := in.MIMEType
	if mimeType == "" {
		mimeType = http.DetectContentType(in.Data)
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     in.Data,
		},
	}
}
