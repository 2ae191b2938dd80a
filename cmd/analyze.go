package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-promo-studio/internal/pipeline"
)

// analyzeCmd は、商品素材のAI解析と分镜脚本の生成だけを実行するのだ。
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "商品素材を解析して分镜脚本を生成しますなのだ。",
	Long: `商品画像・参照画像・参考動画・商品ページをAIで解析し、マーケティング
戦略つきの分镜脚本 (storyboard.json) を保存するのだ。フレーム生成は
render コマンドで続きから実行できるのだよ。`,
	RunE: analyzeCommand,
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(opts.ProductImages) == 0 {
		return fmt.Errorf("商品画像（--image）を1枚以上指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("商品解析を開始するのだ！",
		"images", len(opts.ProductImages),
		"scenes", opts.SceneCount,
		"video", opts.ReferenceVideo != "")

	if err := pipeline.ExecuteAnalyze(ctx, cfg); err != nil {
		return fmt.Errorf("解析中にエラーが発生したのだ: %w", err)
	}
	return nil
}
