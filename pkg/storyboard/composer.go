package storyboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/gemini"
	"github.com/shouni/go-promo-studio/pkg/prompts"
)

// ModelClient はフレーム画像と音声の生成に必要なリモート操作です。
type ModelClient interface {
	RenderImage(ctx context.Context, req gemini.ImageRequest) (*domain.Asset, error)
	SynthesizeSpeech(ctx context.Context, dialogue, voice string) (*domain.Asset, error)
}

// SceneComposer はシーン列のフレーム生成を編排し、連鎖モードでは尾帧を
// 次シーンの首帧へ伝播させます。失敗は各シーンに記録され、1シーンの
// 失敗が他シーンの生成を止めることはありません。
type SceneComposer struct {
	client   ModelClient
	store    *Store
	product  domain.ProductContext
	settings domain.Settings
	limiter  *rate.Limiter
	voice    string
}

// NewSceneComposer は生成パイプラインを束ねます。limiter は nil 可で、
// その場合はレート制御なしになります。
func NewSceneComposer(client ModelClient, store *Store, product domain.ProductContext, settings domain.Settings, limiter *rate.Limiter, voice string) *SceneComposer {
	return &SceneComposer{
		client:   client,
		store:    store,
		product:  product,
		settings: settings,
		limiter:  limiter,
		voice:    domain.NormalizeVoice(voice),
	}
}

// Store は編排対象のストアを返します。
func (c *SceneComposer) Store() *Store { return c.store }

// GenerateAll は全シーンを並び順どおりに生成します。連鎖モードでは
// 前シーンの尾帧が次シーンの首帧になるため、シーン間は直列です。
// 戻り値のエラーはコンテキスト中断のみで、生成失敗は各シーンの
// LastError に記録されます。
func (c *SceneComposer) GenerateAll(ctx context.Context) error {
	n := c.store.Len()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.generateScene(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// generateScene は1シーン分を生成します。首帧を先に確定させてから、
// 尾帧と中間草稿を並行生成します。
func (c *SceneComposer) generateScene(ctx context.Context, index int) error {
	sc, err := c.store.SceneAt(index)
	if err != nil {
		return err
	}
	_ = c.store.Update(sc.ID, SceneUpdate{Err: ptr("")})

	// 首帧。連鎖モードで前シーンから伝播済みなら再生成しません。
	if sc.StartImage == nil {
		if genErr := c.renderFrame(ctx, sc.ID, domain.KindStart, ""); genErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("首帧の生成に失敗したのだ", "scene_id", sc.ID, "error", genErr)
			// 尾帧・中間は首帧に依存するため、このシーンは打ち切ります。
			return nil
		}
	}

	if !c.settings.Mode.NeedsEnd() {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if genErr := c.renderFrame(gctx, sc.ID, domain.KindEnd, ""); genErr != nil && gctx.Err() == nil {
			slog.Warn("尾帧の生成に失敗したのだ", "scene_id", sc.ID, "error", genErr)
		}
		return gctx.Err()
	})
	if c.settings.Mode.NeedsMiddle() {
		g.Go(func() error {
			if genErr := c.renderFrame(gctx, sc.ID, domain.KindMiddle, ""); genErr != nil && gctx.Err() == nil {
				slog.Warn("中間草稿の生成に失敗したのだ", "scene_id", sc.ID, "error", genErr)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return c.propagateEnd(index)
}

// propagateEnd は尾帧が得られていれば次シーンの首帧として上書きします。
func (c *SceneComposer) propagateEnd(index int) error {
	sc, err := c.store.SceneAt(index)
	if err != nil {
		return err
	}
	if sc.EndImage == nil {
		return nil
	}
	next, err := c.store.SceneAt(index + 1)
	if err != nil {
		// 最終シーンには伝播先がありません。
		return nil
	}
	carried := *sc.EndImage
	carried.Kind = domain.KindStart
	if err := c.store.Update(next.ID, SceneUpdate{StartImage: &carried}); err != nil {
		return err
	}
	slog.Info("尾帧を次シーンの首帧へ引き継いだのだ", "from", sc.ID, "to", next.ID)
	return nil
}

// GenerateFrame は1フレームを（再）生成します。promptOverride が空でなければ
// 保存済みプロンプトの代わりに使います。尾帧の再生成に成功した場合は、
// 連鎖モードなら次シーンの首帧も上書きします。
func (c *SceneComposer) GenerateFrame(ctx context.Context, sceneID string, kind domain.AssetKind, promptOverride string) error {
	if err := c.renderFrame(ctx, sceneID, kind, promptOverride); err != nil {
		return err
	}
	if kind == domain.KindEnd && c.settings.Mode.NeedsEnd() {
		index, err := c.sceneIndex(sceneID)
		if err != nil {
			return err
		}
		return c.propagateEnd(index)
	}
	return nil
}

func (c *SceneComposer) sceneIndex(sceneID string) (int, error) {
	for i, sc := range c.store.Scenes() {
		if sc.ID == sceneID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("シーン %q が見つかりません", sceneID)
}

// renderFrame はフレーム1枚のリクエスト組み立て・呼び出し・記録を行います。
func (c *SceneComposer) renderFrame(ctx context.Context, sceneID string, kind domain.AssetKind, promptOverride string) error {
	sc, err := c.store.Scene(sceneID)
	if err != nil {
		return err
	}

	setFlag := func(on bool) *SceneUpdate {
		u := &SceneUpdate{}
		switch kind {
		case domain.KindStart:
			u.GeneratingStart = ptr(on)
		case domain.KindMiddle:
			u.GeneratingMiddle = ptr(on)
		case domain.KindEnd:
			u.GeneratingEnd = ptr(on)
		}
		return u
	}
	// 新しい試行の開始時点で前回の失敗記録を消します。
	begin := setFlag(true)
	begin.Err = ptr("")
	_ = c.store.Update(sceneID, *begin)
	defer func() { _ = c.store.Update(sceneID, *setFlag(false)) }()

	refs, fc := c.frameReferences(sc, kind)
	prompt := prompts.EffectiveFramePrompt(sc, kind, promptOverride, fc)

	// 中間草稿は使い捨てのラフなので解像度を落としてコストを抑えます。
	resolution := c.settings.Resolution
	if kind == domain.KindMiddle {
		resolution = domain.Resolution1K
	}

	if err := c.wait(ctx); err != nil {
		return err
	}
	asset, err := c.client.RenderImage(ctx, gemini.ImageRequest{
		Prompt:      prompt,
		AspectRatio: c.settings.AspectRatio,
		Resolution:  resolution,
		References:  refs,
	})
	if err != nil {
		_ = c.store.Update(sceneID, SceneUpdate{Err: ptr(err.Error())})
		return err
	}

	asset.Kind = kind
	upd := SceneUpdate{Err: ptr("")}
	switch kind {
	case domain.KindStart:
		upd.StartImage = asset
	case domain.KindMiddle:
		upd.MiddleImage = asset
	case domain.KindEnd:
		upd.EndImage = asset
	}
	return c.store.Update(sceneID, upd)
}

// GenerateAudio はシーンのセリフをナレーション音声に変換します。
// セリフが空のシーンは対象外です。
func (c *SceneComposer) GenerateAudio(ctx context.Context, sceneID string) error {
	sc, err := c.store.Scene(sceneID)
	if err != nil {
		return err
	}
	if sc.Dialogue == "" {
		return fmt.Errorf("シーン %q にはセリフがありません", sceneID)
	}

	_ = c.store.Update(sceneID, SceneUpdate{GeneratingAudio: ptr(true), Err: ptr("")})
	defer func() { _ = c.store.Update(sceneID, SceneUpdate{GeneratingAudio: ptr(false)}) }()

	if err := c.wait(ctx); err != nil {
		return err
	}
	asset, err := c.client.SynthesizeSpeech(ctx, sc.Dialogue, c.voice)
	if err != nil {
		_ = c.store.Update(sceneID, SceneUpdate{Err: ptr(err.Error())})
		return err
	}
	return c.store.Update(sceneID, SceneUpdate{Audio: asset, Err: ptr("")})
}

// GenerateAllAudio はセリフを持つ全シーンの音声を順に生成します。
func (c *SceneComposer) GenerateAllAudio(ctx context.Context) error {
	for _, sc := range c.store.Scenes() {
		if sc.Dialogue == "" {
			continue
		}
		if err := c.GenerateAudio(ctx, sc.ID); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("音声合成に失敗したのだ", "scene_id", sc.ID, "error", err)
		}
	}
	return nil
}

func (c *SceneComposer) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
