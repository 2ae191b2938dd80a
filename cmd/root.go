package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shouni/go-promo-studio/internal/config"
)

// opts は各コマンドで共有される実行時パラメータなのだ。
var opts config.GenerateOptions

// rootCmd は、アプリケーション全体のルートコマンドなのだ。
var rootCmd = &cobra.Command{
	Use:   "promo-studio",
	Short: "商品素材からTikTok向けの分镜・フレーム・音声を生成するのだ。",
	Long: `商品画像（と任意の参照画像・参考動画）をAIで解析し、マーケティング戦略つきの
分镜脚本を組み立てて、各シーンのフレーム画像とナレーション音声を生成するツールなのだ。`,
	PersistentPreRunE: preRunAppE,
	SilenceUsage:      true,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringArrayVarP(&opts.ProductImages, "image", "i", nil, "商品画像のパス（ローカル or gs://...、複数指定可）なのだ。")
	rootCmd.PersistentFlags().StringArrayVar(&opts.ModelImages, "model-image", nil, "モデル参照画像のパス（複数指定可）なのだ。")
	rootCmd.PersistentFlags().StringArrayVar(&opts.BackgroundImages, "background-image", nil, "背景参照画像のパス（複数指定可）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ReferenceVideo, "reference-video", "", "テンポを模倣する参考動画のパスなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ProductURL, "product-url", "u", "", "商品ページのURL（本文を抽出して説明に使うのだ）。")
	rootCmd.PersistentFlags().StringVar(&opts.Title, "title", "", "商品タイトルなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Description, "description", "", "商品説明なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.CreativeIdeas, "ideas", "", "優先してほしい創意・演出の方向性なのだ。")

	// --- 生成設定 ---
	rootCmd.PersistentFlags().IntVarP(&opts.SceneCount, "scenes", "n", 0, "生成するシーン数（1〜10、参考動画があればAI判断が優先）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", "", "画面比率（9:16 / 16:9 / 1:1 / 4:3 / 3:4）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Resolution, "resolution", "", "解像度ティア（1K / 2K / 4K）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Mode, "mode", "m", "", "生成モード（standard / start_end / intermediate）なのだ。")

	// --- 出力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存ディレクトリ（ローカル or gs://...）なのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Passphrase, "passphrase", "", "合言葉ゲートが有効な場合の合言葉なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// loadConfig は環境変数とフラグをまとめた Config を組み立てるのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.Options = opts
	return cfg
}

func init() {
	// .env があれば読み込むのだ（無くてもエラーにはしない）。
	if err := godotenv.Load(); err == nil {
		slog.Debug(".env を読み込んだのだ")
	}

	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		generateCmd,
		analyzeCmd,
		renderCmd,
		speechCmd,
		promptCmd,
	)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
