package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-promo-studio/internal/pipeline"
)

// generateCmd は、解析からフレーム・音声生成までを一気に実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "商品解析・フレーム生成・音声合成を一括実行しますなのだ。",
	Long: `商品素材をAIで解析して分镜を組み立て、全シーンのフレーム画像と
ナレーション音声を生成し、成果物一式を保存するのだ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if len(opts.ProductImages) == 0 {
		return fmt.Errorf("商品画像（--image）を1枚以上指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := loadConfig()

	slog.Info("プロモーション生成パイプラインを起動するのだ！",
		"images", len(opts.ProductImages),
		"mode", opts.Mode,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteGenerate(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
