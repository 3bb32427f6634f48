package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImageData は応答のどのパーツにも画像バイナリが含まれていなかったことを示します。
	ErrNoImageData = errors.New("画像データが見つかりませんでした")
	// ErrNoVideoData は完了したジョブから動画参照を取り出せなかったことを示します。
	ErrNoVideoData = errors.New("動画データが見つかりませんでした")
	// ErrPromptRequired は文脈画像も入力画像もないのにプロンプトが空だったことを示します。
	ErrPromptRequired = errors.New("プロンプトが指定されていません")
	// ErrTooManyReferences は参照画像が上限を超えたことを示します。
	ErrTooManyReferences = errors.New("参照画像が多すぎます")
)

// BatchGenerationError は並行バッチの少なくとも1件が失敗したことを示します。
// 最初に観測された失敗を Cause に保持し、部分的な結果は呼び出し側に渡しません。
type BatchGenerationError struct {
	Count int   // 要求された生成枚数
	Cause error // 最初に観測された失敗
}

func (e *BatchGenerationError) Error() string {
	return fmt.Sprintf("バッチ画像生成に失敗しました (要求枚数=%d): %v", e.Count, e.Cause)
}

func (e *BatchGenerationError) Unwrap() error {
	return e.Cause
}
