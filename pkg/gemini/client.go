package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/prompts"
)

// MaxReferenceImages は1回の画像生成に添付できる参照画像の上限です。
// 上限を超えた分は優先度の低い末尾から切り捨てます。
const MaxReferenceImages = 5

// Config はリモートモデルクライアントの設定です。
type Config struct {
	APIKey        string
	AnalysisModel string
	ImageModel    string
	TTSModel      string
	Retry         RetryPolicy
}

// Client は解析・画像生成・音声合成の3系統を束ねるリモートモデルの
// ファサードです。全操作は共通のリトライポリシーで保護されます。
type Client struct {
	genai         *genai.Client
	analysisModel string
	imageModel    string
	ttsModel      string
	retry         RetryPolicy
}

// New は Gemini API バックエンドへのクライアントを生成します。
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIキーが設定されていません")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}
	retry := cfg.Retry
	if retry.MaxRetries == 0 {
		retry = DefaultRetryPolicy()
	}
	return &Client{
		genai:         gc,
		analysisModel: cfg.AnalysisModel,
		imageModel:    cfg.ImageModel,
		ttsModel:      cfg.TTSModel,
		retry:         retry,
	}, nil
}

// analysisSchema は解析応答の構造を宣言的に強制します。
// スキーマがあってもモデルは逸脱し得るため、受信側の検証は別途行います。
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"productType":    {Type: genai.TypeString},
			"sellingPoints":  {Type: genai.TypeString},
			"targetAudience": {Type: genai.TypeString},
			"hook":           {Type: genai.TypeString},
			"painPoints":     {Type: genai.TypeString},
			"strategy":       {Type: genai.TypeString},
			"scenes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":          {Type: genai.TypeString},
						"visual":      {Type: genai.TypeString},
						"action":      {Type: genai.TypeString},
						"camera":      {Type: genai.TypeString},
						"dialogue":    {Type: genai.TypeString},
						"dialogue_cn": {Type: genai.TypeString},
						"prompt": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"imagePrompt": {Type: genai.TypeString},
							},
							Required: []string{"imagePrompt"},
						},
					},
					Required: []string{"id", "visual", "prompt"},
				},
			},
		},
		Required: []string{"productType", "strategy", "hook", "scenes"},
	}
}

// Analyze は商品メディアと文脈を解析し、検証済みのストーリーボードを
// 返します。sessionVoice はセッションで固定したナレーション音声で、
// モデルが返した値より常に優先されます。
func (c *Client) Analyze(ctx context.Context, product domain.ProductContext, sceneCount int, sessionVoice string) (*domain.AnalysisResult, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	parts := make([]*genai.Part, 0, len(product.Images)+len(product.ModelImages)+len(product.BackgroundImages)+2)
	for _, img := range product.Images {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: img}})
	}
	for _, img := range product.ModelImages {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: img}})
	}
	for _, img := range product.BackgroundImages {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: img}})
	}
	if product.HasReferenceVideo() {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: product.ReferenceVideo.MIMEType,
			Data:     product.ReferenceVideo.Data,
		}})
	}
	parts = append(parts, &genai.Part{Text: prompts.BuildAnalysisPrompt(product, sceneCount)})

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: prompts.AnalysisSystemInstruction()}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
	}

	resp, err := doWithRetry(ctx, c.retry, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return c.genai.Models.GenerateContent(ctx, c.analysisModel, contents, config)
	})
	if err != nil {
		return nil, fmt.Errorf("商品解析のリクエストに失敗しました: %w", err)
	}

	result, err := domain.ParseAnalysis(resp.Text())
	if err != nil {
		return nil, err
	}

	// 音声はセッション側で一度だけ抽選した値で上書きします。
	result.AssignedVoice = domain.NormalizeVoice(sessionVoice)
	slog.Info("商品解析が完了したのだ",
		"scenes", len(result.Scenes),
		"strategy", result.Strategy,
		"voice", result.AssignedVoice,
	)
	return result, nil
}

// ImageRequest は1フレーム分の画像生成リクエストです。
// References は優先度順に並べられ、上限超過分は末尾が切り捨てられます。
type ImageRequest struct {
	Prompt      string
	AspectRatio domain.AspectRatio
	Resolution  domain.Resolution
	References  [][]byte
}

// RenderImage はプロンプトと参照画像からフレーム画像を1枚生成します。
func (c *Client) RenderImage(ctx context.Context, req ImageRequest) (*domain.Asset, error) {
	refs := req.References
	if len(refs) > MaxReferenceImages {
		slog.Warn("参照画像が多すぎるので切り詰めるのだ", "given", len(refs), "max", MaxReferenceImages)
		refs = refs[:MaxReferenceImages]
	}

	parts := make([]*genai.Part, 0, len(refs)+1)
	for _, ref := range refs {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: ref}})
	}
	parts = append(parts, &genai.Part{Text: req.Prompt})

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(req.AspectRatio),
			ImageSize:   string(req.Resolution),
		},
	}

	resp, err := doWithRetry(ctx, c.retry, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return c.genai.Models.GenerateContent(ctx, c.imageModel, contents, config)
	})
	if err != nil {
		return nil, fmt.Errorf("画像生成のリクエストに失敗しました: %w", err)
	}

	asset := firstImageAsset(resp)
	if asset == nil {
		return nil, ErrNoImageReturned
	}
	return asset, nil
}

// firstImageAsset は応答パーツから最初の画像データを取り出します。
func firstImageAsset(resp *genai.GenerateContentResponse) *domain.Asset {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.Asset{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}
			}
		}
	}
	return nil
}

// SynthesizeSpeech はセリフをWAV音声に変換します。voice が不正な場合は
// 既定音声へ静かにフォールバックします。
func (c *Client) SynthesizeSpeech(ctx context.Context, dialogue, voice string) (*domain.Asset, error) {
	voice = domain.NormalizeVoice(voice)

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: dialogue}}}}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	resp, err := doWithRetry(ctx, c.retry, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return c.genai.Models.GenerateContent(ctx, c.ttsModel, contents, config)
	})
	if err != nil {
		return nil, fmt.Errorf("音声合成のリクエストに失敗しました: %w", err)
	}

	pcm := firstAudioData(resp)
	if len(pcm) == 0 {
		return nil, ErrNoAudioReturned
	}
	return &domain.Asset{
		Kind:     domain.KindAudio,
		Data:     EncodeWAV(pcm, TTSSampleRate),
		MIMEType: "audio/wav",
	}, nil
}

func firstAudioData(resp *genai.GenerateContentResponse) []byte {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
