package runner

import (
	"context"

	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/studio"
)

// SpeechRunner は、ナレーション音声の合成を担当する構造体なのだ。
// --scene が指定されていれば1シーンだけ、なければセリフを持つ全シーンを
// 順に合成する。
type SpeechRunner struct {
	opts    config.GenerateOptions
	session *studio.Session
}

// NewSpeechRunner は、SpeechRunnerの新しいインスタンスを生成して返すのだ。
func NewSpeechRunner(opts config.GenerateOptions, session *studio.Session) *SpeechRunner {
	return &SpeechRunner{opts: opts, session: session}
}

// Run は音声合成を実行するのだ。
func (sr *SpeechRunner) Run(ctx context.Context) error {
	if sr.opts.SceneID != "" {
		return sr.session.GenerateAudio(ctx, sr.opts.SceneID)
	}
	return sr.session.GenerateAllAudio(ctx)
}
