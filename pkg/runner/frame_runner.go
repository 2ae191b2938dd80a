package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/studio"
)

// FrameRunner は、分镜のフレーム画像生成を担当する構造体なのだ。
// --scene と --frame が指定されていれば1フレームだけ、なければ全シーンを
// 並び順どおりに生成する。連鎖モードでは尾帧が次シーンへ引き継がれるため、
// シーンの順番を飛ばすことはできないのだ。
type FrameRunner struct {
	opts    config.GenerateOptions
	session *studio.Session
}

// NewFrameRunner は、FrameRunnerの新しいインスタンスを生成して返すのだ。
func NewFrameRunner(opts config.GenerateOptions, session *studio.Session) *FrameRunner {
	return &FrameRunner{opts: opts, session: session}
}

// Run はフレーム生成を実行し、失敗したシーンの数を返すのだ。
func (fr *FrameRunner) Run(ctx context.Context) (int, error) {
	if fr.opts.SceneID != "" {
		kind, err := parseFrameKind(fr.opts.Frame)
		if err != nil {
			return 0, err
		}
		if err := fr.session.RegenerateFrame(ctx, fr.opts.SceneID, kind, fr.opts.Prompt); err != nil {
			return 1, err
		}
		return 0, nil
	}

	if err := fr.session.GenerateAll(ctx); err != nil {
		return 0, err
	}

	failed := 0
	for _, sc := range fr.session.Scenes() {
		if sc.LastError != "" {
			failed++
		}
	}
	return failed, nil
}

func parseFrameKind(frame string) (domain.AssetKind, error) {
	switch frame {
	case "", string(domain.KindStart):
		return domain.KindStart, nil
	case string(domain.KindMiddle):
		return domain.KindMiddle, nil
	case string(domain.KindEnd):
		return domain.KindEnd, nil
	}
	return "", fmt.Errorf("不明なフレーム種別なのだ: %q (start / middle / end)", frame)
}
