package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/studio"
)

// PromptRunner は、シーンのプロンプト編集と形式切り替えを担当する構造体なのだ。
type PromptRunner struct {
	opts    config.GenerateOptions
	session *studio.Session
}

// NewPromptRunner は、PromptRunnerの新しいインスタンスを生成して返すのだ。
func NewPromptRunner(opts config.GenerateOptions, session *studio.Session) *PromptRunner {
	return &PromptRunner{opts: opts, session: session}
}

// Run はプロンプト操作を実行するのだ。--prompt があれば手編集の保存、
// --format があれば形式切り替え（AIによる書き直し）になる。
func (pr *PromptRunner) Run(ctx context.Context) error {
	if pr.opts.SceneID == "" {
		return fmt.Errorf("--scene でシーンIDを指定するのだ")
	}

	if pr.opts.Prompt != "" {
		return pr.session.UpdatePrompt(pr.opts.SceneID, pr.opts.Prompt)
	}

	if pr.opts.Format != "" {
		format, err := parsePromptFormat(pr.opts.Format)
		if err != nil {
			return err
		}
		return pr.session.SwitchPromptFormat(ctx, pr.opts.SceneID, format)
	}

	return fmt.Errorf("--prompt か --format のどちらかを指定するのだ")
}

func parsePromptFormat(format string) (domain.PromptFormat, error) {
	switch format {
	case string(domain.FormatPlain):
		return domain.FormatPlain, nil
	case string(domain.FormatManifest):
		return domain.FormatManifest, nil
	}
	return "", fmt.Errorf("不明なプロンプト形式なのだ: %q (plain / manifest)", format)
}
