package generator

import "time"

const (
	// 基準ティア（1K）用の高速モデル
	modelImageFlash = "gemini-2.5-flash-image"
	// 2K/4K 生成に必要な上位モデル（従量課金ティア）
	modelImagePro = "gemini-3-pro-image-preview"
	// 動画生成モデル（常に従量課金ティア）
	modelVideo = "veo-2.0-generate-001"

	// バックエンドが MIME を返さなかった場合の既定値
	defaultImageMIME = "image/png"
	videoMIME        = "video/mp4"

	// 入力画像のみでプロンプトが空のときに補う既定プロンプト
	defaultVideoPrompt = "Animate this image with subtle, natural motion."

	// 動画は常に基準解像度で生成する
	videoResolution = "720p"

	defaultPollInterval = 5 * time.Second
)
