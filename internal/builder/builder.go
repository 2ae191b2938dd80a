package builder

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/gemini"
	"github.com/shouni/go-promo-studio/pkg/prompts"
	"github.com/shouni/go-promo-studio/pkg/publisher"
	"github.com/shouni/go-promo-studio/pkg/studio"

	textgen "github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// Bootstrap は環境設定からクライアント群を初期化し AppContext を組み立てるのだ。
func Bootstrap(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("ストレージクライアントの初期化に失敗しました: %w", err)
	}
	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, fmt.Errorf("InputReaderの取得に失敗しました: %w", err)
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, fmt.Errorf("OutputWriterの取得に失敗しました: %w", err)
	}

	modelClient, err := InitializeModelClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	textClient, err := InitializeTextClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	appCtx := NewAppContext(cfg, httpClient, modelClient, textClient, reader, writer)
	return &appCtx, nil
}

// InitializeModelClient は解析・画像・音声を束ねるリモートクライアントを初期化します。
func InitializeModelClient(ctx context.Context, cfg *config.Config) (*gemini.Client, error) {
	client, err := gemini.New(ctx, gemini.Config{
		APIKey:        cfg.GeminiAPIKey,
		AnalysisModel: cfg.AnalysisModel,
		ImageModel:    cfg.ImageModel,
		TTSModel:      cfg.TTSModel,
	})
	if err != nil {
		return nil, fmt.Errorf("リモートモデルクライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}

// InitializeTextClient はプロンプト書き直し用の軽量クライアントを初期化します。
func InitializeTextClient(ctx context.Context, apiKey string) (textgen.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := textgen.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	textClient, err := textgen.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("テキストクライアントの初期化に失敗しました: %w", err)
	}
	return textClient, nil
}

// geminiRewriter は GenerativeModel を prompts.TextRewriter に適合させます。
type geminiRewriter struct {
	client textgen.GenerativeModel
	model  string
}

func (g *geminiRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, prompt, g.model)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// BuildSession は解析から生成までを束ねるセッションを構築します。
func BuildSession(appCtx *AppContext) *studio.Session {
	rewriter := &geminiRewriter{client: appCtx.textClient, model: appCtx.Config.TextModel}
	formatter := prompts.NewFormatter(rewriter)
	limiter := rate.NewLimiter(rate.Every(config.DefaultRateInterval), 1)
	return studio.NewSession(appCtx.modelClient, formatter, limiter)
}

// BuildPublisher は成果物の保存を担当するパブリッシャーを構築します。
func BuildPublisher(appCtx *AppContext) *publisher.StudioPublisher {
	return publisher.NewStudioPublisher(appCtx.Writer)
}

// BuildAccessGate は合言葉ゲートを構築します。合言葉未設定なら素通しなのだ。
func BuildAccessGate(appCtx *AppContext) *studio.AccessGate {
	return studio.NewAccessGate(appCtx.Config.AccessPassphrase)
}

// BuildExtractor は商品ページの本文抽出に使うエクストラクターを構築します。
func BuildExtractor(appCtx *AppContext) (*extract.Extractor, error) {
	extractor, err := extract.NewExtractor(appCtx.httpClient)
	if err != nil {
		return nil, fmt.Errorf("エクストラクターの初期化に失敗しました: %w", err)
	}
	return extractor, nil
}
