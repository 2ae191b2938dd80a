package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-promo-studio/internal/pipeline"
)

// speechCmd は、分镜のセリフからナレーション音声を合成するのだ。
var speechCmd = &cobra.Command{
	Use:   "speech",
	Short: "分镜のセリフからナレーション音声を合成しますなのだ。",
	Long: `analyze で保存した storyboard.json を読み込み、セリフを持つシーンの
ナレーション音声 (WAV) を合成するのだ。声はセッションごとに固定なのだよ。`,
	RunE: speechCommand,
}

func init() {
	speechCmd.Flags().StringVar(&opts.SceneID, "scene", "", "合成するシーンIDなのだ（省略時はセリフのある全シーン）。")
}

func speechCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(opts.ProductImages) == 0 {
		return fmt.Errorf("セッション復元のため商品画像（--image）も指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("音声合成を開始するのだ！", "scene", opts.SceneID)

	if err := pipeline.ExecuteSpeech(ctx, cfg); err != nil {
		return fmt.Errorf("音声合成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
