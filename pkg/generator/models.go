package generator

import "github.com/shouni/gemini-media-kit/pkg/domain"

// imageModelFor は解像度ティアを担当モデルへ写す純粋関数です。
// 基準ティア（1K、未指定含む）は高速モデル、それより上はすべて上位モデルになります。
// 上位モデルの選択はクレデンシャルゲートと設定形状の両方に影響するため、
// この写像を迂回してはいけません。
func imageModelFor(tier domain.ResolutionTier) string {
	if tier == "" || tier == domain.Tier1K {
		return modelImageFlash
	}
	return modelImagePro
}

// isMeteredImageModel は従量課金ティア（クレデンシャルゲートが必要）かを返します。
func isMeteredImageModel(model string) bool {
	return model == modelImagePro
}

// videoModel は動画生成モデルを返します。動画対応モデルは1つだけです。
func videoModel() string {
	return modelVideo
}
