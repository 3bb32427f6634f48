package domain

import (
	"fmt"
	"time"
)

// AspectRatio は画像生成で指定可能なアスペクト比です。
// RatioCustom の場合のみ Width / Height が参照されます。
type AspectRatio string

const (
	RatioSquare    AspectRatio = "1:1"
	RatioWide      AspectRatio = "16:9"
	RatioTall      AspectRatio = "9:16"
	RatioLandscape AspectRatio = "4:3"
	RatioPortrait  AspectRatio = "3:4"
	RatioCustom    AspectRatio = "custom"
)

// ResolutionTier は画像の解像度ティアです。Tier1K が基準で、
// それより上のティアは上位モデルでのみ生成できます。
type ResolutionTier string

const (
	Tier1K ResolutionTier = "1K"
	Tier2K ResolutionTier = "2K"
	Tier4K ResolutionTier = "4K"
)

// MaxReferenceImages は1リクエストに添付できる参照画像の上限です。
const MaxReferenceImages = 10

// ImageInput は呼び出し側から渡される画像データ（バイナリ + MIMEタイプ）です。
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// GenerationRequest は単一の画像生成要求です。
// ReferenceImages はバイナリで渡された参照画像、ReferenceURLs は
// アダプター経由で解決されるリモート参照です（いずれも順序を保持します）。
type GenerationRequest struct {
	Prompt          string
	Ratio           AspectRatio
	Width           int // Ratio が RatioCustom の場合のみ有効
	Height          int
	Tier            ResolutionTier
	ReferenceImages []ImageInput
	ReferenceURLs   []string
	ContextImage    *ImageInput // 編集・アップスケール用の文脈画像
	EditMode        bool
	Seed            *int64 // nil でランダム、値指定で固定
}

// RatioString はバックエンドに渡すアスペクト比の文字列を返します。
// カスタム指定では "{width}:{height}" を約分せずそのまま使い、
// 幅か高さが欠けている場合は "1:1" へフォールバックします。
func (r GenerationRequest) RatioString() string {
	if r.Ratio == RatioCustom {
		if r.Width > 0 && r.Height > 0 {
			return fmt.Sprintf("%d:%d", r.Width, r.Height)
		}
		return string(RatioSquare)
	}
	if r.Ratio == "" {
		return string(RatioSquare)
	}
	return string(r.Ratio)
}

// VideoAspect は動画生成で指定可能なアスペクト比です。横長か縦長のみ許可されます。
type VideoAspect string

const (
	VideoWide VideoAspect = "16:9"
	VideoTall VideoAspect = "9:16"
)

// VideoGenerationRequest は動画生成要求です。
// Prompt が空で InputImage がある場合は既定プロンプトが補われます。
type VideoGenerationRequest struct {
	Prompt     string
	InputImage *ImageInput
	Aspect     VideoAspect
}

// GeneratedAsset は生成された1つの画像または動画への参照です。
// URI か Data のどちらか一方が設定されます。返却後の所有権は呼び出し側にあり、
// ライブラリ側は状態を保持しません。
type GeneratedAsset struct {
	URI       string
	Data      []byte
	MIMEType  string
	Prompt    string
	Ratio     string // 解決済みのアスペクト比文字列
	Width     int    // カスタム比の場合のみ設定
	Height    int
	CreatedAt time.Time
}
