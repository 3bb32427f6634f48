package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shouni/gemini-media-kit/pkg/imgutil"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

const (
	// UseImageCompression を無効にすると参照画像を常に原寸で送ります。
	UseImageCompression     = true
	ImageCompressionQuality = 75

	// これを超える参照画像はインラインではなく File API 経由で渡す
	inlineSizeLimit = 4 << 20

	cacheKeyData     = "refdata:"
	cacheKeyFileURI  = "refuri:"
	cacheKeyFileName = "refname:"
)

// ImageCacher は、解決済みの参照画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// ReferenceResolver は参照画像URL（http/https または gs://）を genai.Part へ
// 解決するコンポーネントです。取得・圧縮・キャッシュ・File API アップロードを
// 一括で担当し、generator.ReferencePreparer として注入されます。
type ReferenceResolver struct {
	fileClient gemini.GenerativeModel // File API（nil の場合は常にインライン）
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	cache      ImageCacher
	cacheTTL   time.Duration
}

// NewReferenceResolver は依存関係を注入して ReferenceResolver を初期化します。
// fileClient と cache は nil を許容します（File API なし／キャッシュなし動作）。
func NewReferenceResolver(fileClient gemini.GenerativeModel, httpClient httpkit.ClientInterface, reader remoteio.InputReader, cache ImageCacher, cacheTTL time.Duration) (*ReferenceResolver, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}

	return &ReferenceResolver{
		fileClient: fileClient,
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}, nil
}

// PreparePart は参照URLを取得して genai.Part に変換します。
// inlineSizeLimit を超えるデータは File API にアップロードし、FileData パーツを返します。
func (r *ReferenceResolver) PreparePart(ctx context.Context, rawURL string) (*genai.Part, error) {
	// File API アップロード済みならその URI を再利用する
	if r.cache != nil {
		if val, ok := r.cache.Get(cacheKeyFileURI + rawURL); ok {
			if uri, ok := val.(string); ok {
				return &genai.Part{FileData: &genai.FileData{FileURI: uri}}, nil
			}
		}
		if val, ok := r.cache.Get(cacheKeyData + rawURL); ok {
			if data, ok := val.([]byte); ok {
				return r.inlinePart(data)
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", val))
		}
	}

	data, err := r.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if UseImageCompression {
		data = imgutil.CompressIfLarge(data, inlineSizeLimit, ImageCompressionQuality)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("参照URLの内容が画像ではありません (MIME: %s): %s", mimeType, rawURL)
	}

	// 圧縮しても大きい場合はインラインにせず File API へ逃がす
	if len(data) > inlineSizeLimit && r.fileClient != nil {
		// 同一内容が別URLからアップロード済みなら再利用する
		if r.cache != nil {
			if val, ok := r.cache.Get(cacheKeyFileURI + contentKey(data)); ok {
				if uri, ok := val.(string); ok {
					r.cache.Set(cacheKeyFileURI+rawURL, uri, r.cacheTTL)
					return &genai.Part{FileData: &genai.FileData{FileURI: uri}}, nil
				}
			}
		}
		return r.uploadPart(ctx, rawURL, data, mimeType)
	}

	if r.cache != nil {
		r.cache.Set(cacheKeyData+rawURL, data, r.cacheTTL)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}, nil
}

// Discard は File API にアップロード済みの参照を削除します。
// インラインのみで解決された参照に対しては何もしません。
func (r *ReferenceResolver) Discard(ctx context.Context, rawURL string) error {
	if r.fileClient == nil || r.cache == nil {
		return nil
	}
	val, ok := r.cache.Get(cacheKeyFileName + rawURL)
	if !ok {
		return nil
	}
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("キャッシュされたファイル名が不正です: %s", rawURL)
	}
	return r.fileClient.DeleteFile(ctx, name)
}

func (r *ReferenceResolver) uploadPart(ctx context.Context, rawURL string, data []byte, mimeType string) (*genai.Part, error) {
	displayName := path.Base(rawURL)
	uri, fileName, err := r.fileClient.UploadFile(ctx, data, mimeType, displayName)
	if err != nil {
		return nil, fmt.Errorf("File APIへのアップロードに失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "大きな参照画像を File API にアップロードしました",
		"url", rawURL, "size", len(data), "file", fileName)

	// URI（参照用・URLと内容ハッシュの両キー）と Name（削除用）をキャッシュする
	if r.cache != nil {
		r.cache.Set(cacheKeyFileURI+rawURL, uri, r.cacheTTL)
		r.cache.Set(cacheKeyFileURI+contentKey(data), uri, r.cacheTTL)
		r.cache.Set(cacheKeyFileName+rawURL, fileName, r.cacheTTL)
	}
	return &genai.Part{FileData: &genai.FileData{FileURI: uri}}, nil
}

func (r *ReferenceResolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		rc, err := r.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("GCSからの読み込みに失敗しました: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	// SSRF対策のバリデーション
	if safe, err := isSafeURL(rawURL); !safe || err != nil {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return r.httpClient.FetchBytes(ctx, rawURL)
}

func (r *ReferenceResolver) inlinePart(data []byte) (*genai.Part, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("キャッシュされた内容が画像ではありません (MIME: %s)", mimeType)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}, nil
}

// contentKey はデータ内容に基づくキャッシュキーを生成します。
// 同一内容の画像が異なるURLから参照されても重複アップロードを避けられます。
func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
