package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/gemini-media-kit/pkg/domain"
	"google.golang.org/genai"
)

// GenerateVideo は動画生成ジョブを投入し、完了するまで一定間隔でポーリングして
// 生成結果への参照を返します。動画生成は常に従量課金ティアのため、
// 投入前に必ずクレデンシャルゲートを通します。
//
// リトライは行わず、投入時・ポーリング中の失敗はそのまま呼び出し側へ返します。
// ジョブ自体の打ち切りはできないため、待ち時間を制限したい場合は
// context.WithTimeout などで ctx 側に期限を設定してください。
func (g *GeminiMediaGenerator) GenerateVideo(ctx context.Context, req domain.VideoGenerationRequest) (*domain.GeneratedAsset, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		if req.InputImage == nil {
			return nil, ErrPromptRequired
		}
		prompt = defaultVideoPrompt
	}

	aspect := req.Aspect
	switch aspect {
	case domain.VideoWide, domain.VideoTall:
	case "":
		aspect = domain.VideoWide
	default:
		return nil, fmt.Errorf("動画のアスペクト比は %s か %s のみ指定できます: %s", domain.VideoWide, domain.VideoTall, aspect)
	}

	if err := g.ensureAuthorized(ctx); err != nil {
		return nil, err
	}

	var image *genai.Image
	if req.InputImage != nil {
		image = &genai.Image{
			ImageBytes: req.InputImage.Data,
			MIMEType:   req.InputImage.MIMEType,
		}
	}

	op, err := g.backend.GenerateVideos(ctx, videoModel(), prompt, image, buildVideoConfig(aspect))
	if err != nil {
		slog.ErrorContext(ctx, "動画生成ジョブの投入に失敗しました", "model", videoModel(), "error", err)
		return nil, fmt.Errorf("動画生成ジョブの投入に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "動画生成ジョブを開始しました", "model", videoModel(), "operation", op.Name)

	// 完了フラグが立つまで、このジョブに対しては常に1件だけポーリングする
	for !op.Done {
		if err := g.waitPollInterval(ctx); err != nil {
			return nil, err
		}
		refreshed, err := g.backend.PollVideosOperation(ctx, op)
		if err != nil {
			slog.ErrorContext(ctx, "動画ジョブのポーリングに失敗しました", "operation", op.Name, "error", err)
			return nil, fmt.Errorf("動画ジョブのポーリングに失敗しました: %w", err)
		}
		op = refreshed
	}

	if len(op.Error) > 0 {
		slog.ErrorContext(ctx, "動画生成ジョブが失敗しました", "operation", op.Name, "error", op.Error)
		return nil, fmt.Errorf("動画生成ジョブが失敗しました: %v", op.Error)
	}

	uri, mimeType := firstVideoReference(op)
	if uri == "" {
		slog.ErrorContext(ctx, "完了したジョブに動画参照が含まれていません", "operation", op.Name)
		return nil, ErrNoVideoData
	}

	// 返した参照だけで取得できるよう、リクエストに使ったトークンを付与する
	return &domain.GeneratedAsset{
		URI:       withAccessToken(uri, g.backend.AccessToken()),
		MIMEType:  mimeType,
		Prompt:    prompt,
		Ratio:     string(aspect),
		CreatedAt: time.Now(),
	}, nil
}

// waitPollInterval はポーリング間隔ぶんだけ待機します。ctx の取り消しを常に
// 監視するため、裸の time.Sleep は使いません。
func (g *GeminiMediaGenerator) waitPollInterval(ctx context.Context) error {
	timer := time.NewTimer(g.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// firstVideoReference は完了したジョブから最初の動画参照を取り出します。
func firstVideoReference(op *genai.GenerateVideosOperation) (string, string) {
	if op == nil || op.Response == nil {
		return "", ""
	}
	for _, generated := range op.Response.GeneratedVideos {
		if generated == nil || generated.Video == nil || generated.Video.URI == "" {
			continue
		}
		mimeType := generated.Video.MIMEType
		if mimeType == "" {
			mimeType = videoMIME
		}
		return generated.Video.URI, mimeType
	}
	return "", ""
}

// withAccessToken は動画URIにアクセストークンを付与します。
// Gemini のダウンロードURIは既にクエリを持つため通常は "&key=" になります。
func withAccessToken(uri, token string) string {
	if token == "" {
		return uri
	}
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + "key=" + token
}
