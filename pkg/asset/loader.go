package asset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

// Loader は商品画像・参照画像・参考動画をローカル/GCS/HTTP から読み込みます。
// 同じ素材を複数コマンドで使い回すため、読み込んだバイト列はTTL付きで
// キャッシュします。
type Loader struct {
	reader remoteio.InputReader
	cache  *cache.Cache
}

// NewLoader は読み込みクライアントとキャッシュを束ねます。
func NewLoader(reader remoteio.InputReader) *Loader {
	return &Loader{
		reader: reader,
		cache:  cache.New(30*time.Minute, 1*time.Hour),
	}
}

// LoadBytes は1素材を読み込みます。キャッシュヒット時はI/Oを行いません。
func (l *Loader) LoadBytes(ctx context.Context, path string) ([]byte, error) {
	if cached, found := l.cache.Get(path); found {
		slog.Debug("素材キャッシュにヒットしたのだ", "path", path)
		return cached.([]byte), nil
	}

	rc, err := l.reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("素材 %q を開けませんでした: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("素材 %q の読み込みに失敗しました: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("素材 %q が空です", path)
	}

	l.cache.Set(path, data, cache.DefaultExpiration)
	return data, nil
}

// LoadImages は画像パス群をまとめて読み込み、画像以外の内容を拒否します。
func (l *Loader) LoadImages(ctx context.Context, paths []string) ([][]byte, error) {
	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := l.LoadBytes(ctx, path)
		if err != nil {
			return nil, err
		}
		if mime := http.DetectContentType(data); !strings.HasPrefix(mime, "image/") {
			return nil, fmt.Errorf("素材 %q は画像ではありません (%s)", path, mime)
		}
		images = append(images, data)
	}
	return images, nil
}

// LoadScript は保存済みの分镜スクリプト (storyboard.json) を読み込みます。
func (l *Loader) LoadScript(ctx context.Context, path string) (*domain.StoryboardScript, error) {
	data, err := l.LoadBytes(ctx, path)
	if err != nil {
		return nil, err
	}
	var script domain.StoryboardScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("分镜スクリプト %q の解析に失敗しました: %w", path, err)
	}
	if len(script.Scenes) == 0 {
		return nil, fmt.Errorf("分镜スクリプト %q にシーンがありません", path)
	}
	return &script, nil
}

// LoadVideo は参考動画を読み込みます。MIME種別は内容から推定します。
func (l *Loader) LoadVideo(ctx context.Context, path string) (*domain.ReferenceVideo, error) {
	data, err := l.LoadBytes(ctx, path)
	if err != nil {
		return nil, err
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "video/") {
		// DetectContentType は一部のMP4を application/octet-stream と
		// 判定するため、拡張子が明らかな場合だけ補正します。
		if strings.HasSuffix(strings.ToLower(path), ".mp4") {
			mime = "video/mp4"
		} else {
			return nil, fmt.Errorf("素材 %q は動画ではありません (%s)", path, mime)
		}
	}
	return &domain.ReferenceVideo{Data: data, MIMEType: mime}, nil
}
