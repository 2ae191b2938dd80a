// Package studio はプロモーション動画制作セッションの制御層です。
// 解析・分镜编排・プロンプト再構成を1つのセッションに束ねます。
package studio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/storyboard"
)

// RemoteClient はセッションが必要とするリモートモデル操作の全体です。
type RemoteClient interface {
	storyboard.ModelClient
	Analyze(ctx context.Context, product domain.ProductContext, sceneCount int, sessionVoice string) (*domain.AnalysisResult, error)
}

// PromptRenderer はシーンの台本から指定形式のプロンプトを再構成します。
type PromptRenderer interface {
	Render(ctx context.Context, scene domain.Scene, format domain.PromptFormat) (string, error)
}

// Session は1回の制作セッションです。商品素材と設定を受け取り、解析から
// フレーム・音声生成までの状態を保持します。並行利用は想定しません
// （内部のストアだけが生成ゴルーチンと共有されます）。
type Session struct {
	client    RemoteClient
	formatter PromptRenderer
	limiter   *rate.Limiter

	product  domain.ProductContext
	settings domain.Settings

	voiceOnce sync.Once
	voice     string

	analysis *domain.AnalysisResult
	store    *storyboard.Store
	composer *storyboard.SceneComposer
}

// NewSession は既定設定のセッションを生成します。
func NewSession(client RemoteClient, formatter PromptRenderer, limiter *rate.Limiter) *Session {
	return &Session{
		client:    client,
		formatter: formatter,
		limiter:   limiter,
		settings:  domain.DefaultSettings(),
		store:     storyboard.NewStore(),
	}
}

// SetProduct は商品素材一式を差し替えます。解析前に呼ぶ想定です。
func (s *Session) SetProduct(product domain.ProductContext) {
	s.product = product
}

// SetSettings は生成設定を検証してから反映します。シーン数は黙って
// 許容範囲に丸めます。
func (s *Session) SetSettings(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings.SceneCount = domain.ClampSceneCount(settings.SceneCount)
	s.settings = settings
	return nil
}

// AdjustSceneCount はシーン数だけを丸めつつ変更します。
func (s *Session) AdjustSceneCount(n int) {
	s.settings.SceneCount = domain.ClampSceneCount(n)
}

// Settings は現在の設定のコピーを返します。
func (s *Session) Settings() domain.Settings { return s.settings }

// Voice はこのセッションのナレーション音声を返します。初回呼び出しで
// 1度だけ抽選され、以降は解析を再実行しても変わりません。
func (s *Session) Voice() string {
	s.voiceOnce.Do(func() {
		s.voice = domain.PickSessionVoice()
		slog.Info("セッションのナレーション音声を決めたのだ", "voice", s.voice)
	})
	return s.voice
}

// Analysis は直近の解析結果を返します。未解析なら nil です。
func (s *Session) Analysis() *domain.AnalysisResult { return s.analysis }

// Scenes は現在のシーン列のスナップショットを返します。
func (s *Session) Scenes() []domain.Scene { return s.store.Scenes() }

// Composer は現在の設定で束ねられた编排器を返します。Analyze 前は nil です。
func (s *Session) Composer() *storyboard.SceneComposer { return s.composer }

// Analyze は商品素材を解析し、得られた分镜でストアを初期化します。
// 再実行すると既存のシーンとアセットはすべて破棄されます。
func (s *Session) Analyze(ctx context.Context) (*domain.AnalysisResult, error) {
	if err := s.product.Validate(); err != nil {
		return nil, err
	}

	result, err := s.client.Analyze(ctx, s.product, s.settings.SceneCount, s.Voice())
	if err != nil {
		return nil, err
	}

	// 参考動画モードではAI側の判断したシーン数が設定を上書きします。
	if s.product.HasReferenceVideo() && len(result.Scenes) != s.settings.SceneCount {
		slog.Info("参考動画に合わせてシーン数を上書きしたのだ",
			"requested", s.settings.SceneCount, "actual", len(result.Scenes))
		s.settings.SceneCount = domain.ClampSceneCount(len(result.Scenes))
	}

	s.analysis = result
	s.store.Seed(result.Scenes)
	s.composer = storyboard.NewSceneComposer(s.client, s.store, s.product, s.settings, s.limiter, s.Voice())
	return result, nil
}

// Restore は保存済みの分镜スクリプトからセッション状態を復元します。
// 商品素材と設定は復元前に反映しておく必要があります。
func (s *Session) Restore(script *domain.StoryboardScript) error {
	if len(script.Scenes) == 0 {
		return fmt.Errorf("復元するシーンがありません")
	}
	if err := s.product.Validate(); err != nil {
		return err
	}

	s.analysis = script.Analysis
	s.store.Seed(script.Scenes)

	voice := s.Voice()
	if script.Analysis != nil && script.Analysis.AssignedVoice != "" {
		// 保存時の音声を引き継ぎ、セッション再開で声が変わらないようにします。
		voice = script.Analysis.AssignedVoice
	}
	s.composer = storyboard.NewSceneComposer(s.client, s.store, s.product, s.settings, s.limiter, voice)
	return nil
}

// GenerateAll は全シーンのフレームを生成します。
func (s *Session) GenerateAll(ctx context.Context) error {
	composer, err := s.requireComposer()
	if err != nil {
		return err
	}
	return composer.GenerateAll(ctx)
}

// RegenerateFrame は1フレームを再生成します。promptOverride が空でなければ
// ユーザーが書き換えたプロンプトをそのまま使います。
func (s *Session) RegenerateFrame(ctx context.Context, sceneID string, kind domain.AssetKind, promptOverride string) error {
	composer, err := s.requireComposer()
	if err != nil {
		return err
	}
	return composer.GenerateFrame(ctx, sceneID, kind, promptOverride)
}

// GenerateAudio は1シーンのナレーション音声を合成します。
func (s *Session) GenerateAudio(ctx context.Context, sceneID string) error {
	composer, err := s.requireComposer()
	if err != nil {
		return err
	}
	return composer.GenerateAudio(ctx, sceneID)
}

// GenerateAllAudio はセリフを持つ全シーンの音声を合成します。
func (s *Session) GenerateAllAudio(ctx context.Context) error {
	composer, err := s.requireComposer()
	if err != nil {
		return err
	}
	return composer.GenerateAllAudio(ctx)
}

// UpdatePrompt はユーザーが手で編集したプロンプトをシーンに保存します。
func (s *Session) UpdatePrompt(sceneID, prompt string) error {
	return s.store.Update(sceneID, storyboard.SceneUpdate{Prompt: &prompt})
}

// SwitchPromptFormat はシーンのプロンプトを指定形式でリモートに書き直させ、
// 成功した場合のみ形式とプロンプトを差し替えます。
func (s *Session) SwitchPromptFormat(ctx context.Context, sceneID string, format domain.PromptFormat) error {
	sc, err := s.store.Scene(sceneID)
	if err != nil {
		return err
	}
	if sc.PromptFormat == format {
		return nil
	}

	updating := true
	_ = s.store.Update(sceneID, storyboard.SceneUpdate{UpdatingPrompt: &updating})
	defer func() {
		updating = false
		_ = s.store.Update(sceneID, storyboard.SceneUpdate{UpdatingPrompt: &updating})
	}()

	rewritten, err := s.formatter.Render(ctx, sc, format)
	if err != nil {
		msg := err.Error()
		_ = s.store.Update(sceneID, storyboard.SceneUpdate{Err: &msg})
		return fmt.Errorf("プロンプト形式の切り替えに失敗しました: %w", err)
	}

	empty := ""
	return s.store.Update(sceneID, storyboard.SceneUpdate{
		Prompt:       &rewritten,
		PromptFormat: &format,
		Err:          &empty,
	})
}

func (s *Session) requireComposer() (*storyboard.SceneComposer, error) {
	if s.composer == nil {
		return nil, fmt.Errorf("解析が未実行です。先に Analyze を呼んでください")
	}
	return s.composer, nil
}
