package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-promo-studio/internal/pipeline"
)

// renderCmd は、保存済みの分镜からフレーム画像を生成するのだ。
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "分镜脚本からフレーム画像を生成しますなのだ。",
	Long: `analyze で保存した storyboard.json を読み込み、各シーンのフレーム画像を
生成するのだ。--scene と --frame を指定すれば1フレームだけの再生成もできる。
連鎖モード（start_end / intermediate）では尾帧が次シーンの首帧になるのだよ。`,
	RunE: renderCommand,
}

func init() {
	renderCmd.Flags().StringVar(&opts.SceneID, "scene", "", "再生成するシーンIDなのだ（省略時は全シーン）。")
	renderCmd.Flags().StringVar(&opts.Frame, "frame", "", "再生成するフレーム（start / middle / end）なのだ。")
	renderCmd.Flags().StringVar(&opts.Prompt, "prompt", "", "再生成時に使う上書きプロンプトなのだ。")
}

func renderCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(opts.ProductImages) == 0 {
		return fmt.Errorf("参照の一貫性のため商品画像（--image）も指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("フレーム生成を開始するのだ！",
		"scene", opts.SceneID,
		"frame", opts.Frame,
		"mode", opts.Mode)

	if err := pipeline.ExecuteRender(ctx, cfg); err != nil {
		return fmt.Errorf("フレーム生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
