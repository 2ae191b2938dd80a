package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultAnalysisModel = "gemini-3-pro-preview"
	DefaultImageModel    = "gemini-3-pro-image-preview"
	DefaultTTSModel      = "gemini-2.5-flash-preview-tts"
	DefaultTextModel     = "gemini-3-flash-preview" // プロンプト書き直し用の軽量モデルなのだ
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultRateInterval  = 10 * time.Second // 画像・音声生成の最小呼び出し間隔なのだ
	DefaultOutputDir     = "output/storyboard"
)

// Config はアプリケーション全体の環境設定（APIキーや利用モデル）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey  string
	AnalysisModel string
	ImageModel    string
	TTSModel      string
	TextModel     string

	// AccessPassphrase が空でなければ、実行前に合言葉の入力を要求するのだ。
	AccessPassphrase string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		AnalysisModel:    envutil.GetEnv("GEMINI_MODEL", DefaultAnalysisModel),
		ImageModel:       envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		TTSModel:         envutil.GetEnv("TTS_GEMINI_MODEL", DefaultTTSModel),
		TextModel:        envutil.GetEnv("TEXT_GEMINI_MODEL", DefaultTextModel),
		AccessPassphrase: envutil.GetEnv("STUDIO_PASSPHRASE", ""),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	ProductImages    []string // --image: 商品画像（必須・複数可）
	ModelImages      []string // --model-image: モデル参照画像
	BackgroundImages []string // --background-image: 背景参照画像
	ReferenceVideo   string   // --reference-video: 参考動画
	ProductURL       string   // --product-url: 商品ページURL（本文を抽出して説明に使う）
	Title            string   // --title
	Description      string   // --description
	CreativeIdeas    string   // --ideas

	// 生成設定
	SceneCount  int    // --scenes
	AspectRatio string // --aspect-ratio
	Resolution  string // --resolution
	Mode        string // --mode: standard / start_end / intermediate

	// 出力関連
	OutputDir string // --output-dir
	SceneID   string // --scene: 単一シーン指定
	Frame     string // --frame: start / middle / end
	Prompt    string // --prompt: フレーム再生成時の上書きプロンプト
	Format    string // --format: plain / manifest

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
	Passphrase  string        // --passphrase: 合言葉ゲートが有効な場合に必要
}
