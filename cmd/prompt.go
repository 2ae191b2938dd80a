package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-promo-studio/internal/pipeline"
)

// promptCmd は、シーンのプロンプト編集と形式切り替えを実行するのだ。
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "シーンの視覚プロンプトを編集・変換しますなのだ。",
	Long: `analyze で保存した storyboard.json のシーンについて、--prompt で
手編集した内容を保存するか、--format plain / manifest で形式を切り替えるのだ。
manifest 形式への変換はAIによる書き直しになるのだよ。`,
	RunE: promptCommand,
}

func init() {
	promptCmd.Flags().StringVar(&opts.SceneID, "scene", "", "対象シーンIDなのだ（必須）。")
	promptCmd.Flags().StringVar(&opts.Prompt, "prompt", "", "手編集したプロンプト本文なのだ。")
	promptCmd.Flags().StringVar(&opts.Format, "format", "", "変換先のプロンプト形式（plain / manifest）なのだ。")
}

func promptCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(opts.ProductImages) == 0 {
		return fmt.Errorf("セッション復元のため商品画像（--image）も指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("プロンプト操作を開始するのだ！", "scene", opts.SceneID, "format", opts.Format)

	if err := pipeline.ExecutePrompt(ctx, cfg); err != nil {
		return fmt.Errorf("プロンプト操作中にエラーが発生したのだ: %w", err)
	}
	return nil
}
