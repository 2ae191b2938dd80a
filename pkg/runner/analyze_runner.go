// Package runner は CLI コマンドから呼ばれる実行単位を束ねるのだ。
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-web-exact/v2/pkg/extract"

	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/asset"
	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/studio"
)

// AnalyzeRunner は、商品素材の読み込みからAI解析までを一気に実行する核となる構造体なのだ。
type AnalyzeRunner struct {
	opts      config.GenerateOptions // 実行時のコマンドライン引数や設定
	loader    *asset.Loader          // ローカルやGCSの素材を読み込むローダー
	extractor *extract.Extractor     // 商品ページから本文を抽出するエクストラクター
	session   *studio.Session        // 解析と生成の状態を保持するセッション
}

// NewAnalyzeRunner は、AnalyzeRunnerの新しいインスタンスを生成して返すのだ。
func NewAnalyzeRunner(
	opts config.GenerateOptions,
	loader *asset.Loader,
	ext *extract.Extractor,
	session *studio.Session,
) *AnalyzeRunner {
	return &AnalyzeRunner{
		opts:      opts,
		loader:    loader,
		extractor: ext,
		session:   session,
	}
}

// Run は、素材の読み込み、設定の反映、AI解析を一気に行うのだ。
func (ar *AnalyzeRunner) Run(ctx context.Context) (*domain.AnalysisResult, error) {
	// 1. 商品素材（画像・参照画像・参考動画）を読み込むのだ
	product, err := ar.LoadProduct(ctx)
	if err != nil {
		return nil, err
	}

	// 2. 商品ページURLが指定されていれば本文を抽出して説明に足すのだ
	if ar.opts.ProductURL != "" {
		text, _, err := ar.extractor.FetchAndExtractText(ctx, ar.opts.ProductURL)
		if err != nil {
			return nil, fmt.Errorf("商品ページの抽出に失敗したのだ: %w", err)
		}
		product.Description = joinDescription(product.Description, text)
		slog.Info("商品ページの本文を取り込んだのだ", "url", ar.opts.ProductURL, "chars", len(text))
	}

	// 3. 生成設定をセッションへ反映するのだ
	settings, err := BuildSettings(ar.opts)
	if err != nil {
		return nil, err
	}
	ar.session.SetProduct(product)
	if err := ar.session.SetSettings(settings); err != nil {
		return nil, err
	}

	// 4. AI解析を実行して分镜を得るのだ
	return ar.session.Analyze(ctx)
}

// LoadProduct は商品素材一式を読み込んで検証するのだ。セッション復元時にも使う。
func (ar *AnalyzeRunner) LoadProduct(ctx context.Context) (domain.ProductContext, error) {
	product := domain.ProductContext{
		Title:         ar.opts.Title,
		Description:   ar.opts.Description,
		CreativeIdeas: ar.opts.CreativeIdeas,
	}

	images, err := ar.loader.LoadImages(ctx, ar.opts.ProductImages)
	if err != nil {
		return product, fmt.Errorf("商品画像の読み込みに失敗したのだ: %w", err)
	}
	product.Images = images

	if len(ar.opts.ModelImages) > 0 {
		if product.ModelImages, err = ar.loader.LoadImages(ctx, ar.opts.ModelImages); err != nil {
			return product, fmt.Errorf("モデル参照画像の読み込みに失敗したのだ: %w", err)
		}
	}
	if len(ar.opts.BackgroundImages) > 0 {
		if product.BackgroundImages, err = ar.loader.LoadImages(ctx, ar.opts.BackgroundImages); err != nil {
			return product, fmt.Errorf("背景参照画像の読み込みに失敗したのだ: %w", err)
		}
	}
	if ar.opts.ReferenceVideo != "" {
		if product.ReferenceVideo, err = ar.loader.LoadVideo(ctx, ar.opts.ReferenceVideo); err != nil {
			return product, fmt.Errorf("参考動画の読み込みに失敗したのだ: %w", err)
		}
	}
	return product, product.Validate()
}

func joinDescription(base, extracted string) string {
	extracted = strings.TrimSpace(extracted)
	if extracted == "" {
		return base
	}
	if base == "" {
		return extracted
	}
	return base + "\n\n" + extracted
}

// BuildSettings は CLI フラグの文字列から検証済みの生成設定を組み立てるのだ。
func BuildSettings(opts config.GenerateOptions) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if opts.AspectRatio != "" {
		settings.AspectRatio = domain.AspectRatio(opts.AspectRatio)
	}
	if opts.Resolution != "" {
		settings.Resolution = domain.Resolution(opts.Resolution)
	}
	if opts.Mode != "" {
		settings.Mode = domain.GenerationMode(opts.Mode)
	}
	if opts.SceneCount > 0 {
		settings.SceneCount = opts.SceneCount
	}
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}
