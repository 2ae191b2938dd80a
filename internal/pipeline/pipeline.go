// Package pipeline は CLI コマンドごとの実行フローを束ねるのだ。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-promo-studio/internal/builder"
	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/asset"
	"github.com/shouni/go-promo-studio/pkg/publisher"
	"github.com/shouni/go-promo-studio/pkg/runner"
	"github.com/shouni/go-promo-studio/pkg/studio"
)

// ExecuteAnalyze は商品素材を解析し、分镜スクリプトを保存するのだ。
func ExecuteAnalyze(ctx context.Context, cfg *config.Config) error {
	appCtx, session, err := setup(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runAnalyze(ctx, appCtx, session); err != nil {
		return err
	}

	return publish(ctx, appCtx, session)
}

// ExecuteRender は保存済みの分镜からフレーム画像を生成するのだ。
func ExecuteRender(ctx context.Context, cfg *config.Config) error {
	appCtx, session, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	if err := restoreSession(ctx, appCtx, session); err != nil {
		return err
	}

	frameRunner := runner.NewFrameRunner(appCtx.Options, session)
	failed, err := frameRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("フレーム生成に失敗したのだ: %w", err)
	}
	if failed > 0 {
		slog.Warn("一部のシーンが失敗したのだ", "failed", failed)
	}

	return publish(ctx, appCtx, session)
}

// ExecuteSpeech は保存済みの分镜からナレーション音声を合成するのだ。
func ExecuteSpeech(ctx context.Context, cfg *config.Config) error {
	appCtx, session, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	if err := restoreSession(ctx, appCtx, session); err != nil {
		return err
	}

	speechRunner := runner.NewSpeechRunner(appCtx.Options, session)
	if err := speechRunner.Run(ctx); err != nil {
		return fmt.Errorf("音声合成に失敗したのだ: %w", err)
	}

	return publish(ctx, appCtx, session)
}

// ExecutePrompt はシーンのプロンプト編集・形式切り替えを行うのだ。
func ExecutePrompt(ctx context.Context, cfg *config.Config) error {
	appCtx, session, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	if err := restoreSession(ctx, appCtx, session); err != nil {
		return err
	}

	promptRunner := runner.NewPromptRunner(appCtx.Options, session)
	if err := promptRunner.Run(ctx); err != nil {
		return err
	}

	return publish(ctx, appCtx, session)
}

// ExecuteGenerate は解析・フレーム生成・音声合成・保存を一気に実行するのだ！
func ExecuteGenerate(ctx context.Context, cfg *config.Config) error {
	appCtx, session, err := setup(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runAnalyze(ctx, appCtx, session); err != nil {
		return err
	}

	slog.Info("Phase 2: フレーム生成を開始するのだ...", "scenes", len(session.Scenes()))
	frameRunner := runner.NewFrameRunner(appCtx.Options, session)
	failed, err := frameRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("フレーム生成に失敗したのだ: %w", err)
	}
	if failed > 0 {
		slog.Warn("一部のシーンが失敗したのだ。再生成は render コマンドでできるのだ", "failed", failed)
	}

	slog.Info("Phase 3: ナレーション音声を合成するのだ...")
	speechRunner := runner.NewSpeechRunner(appCtx.Options, session)
	if err := speechRunner.Run(ctx); err != nil {
		return fmt.Errorf("音声合成に失敗したのだ: %w", err)
	}

	return publish(ctx, appCtx, session)
}

// setup は共通コンテキストとセッションを初期化し、合言葉ゲートを通すのだ。
func setup(ctx context.Context, cfg *config.Config) (*builder.AppContext, *studio.Session, error) {
	appCtx, err := builder.Bootstrap(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	gate := builder.BuildAccessGate(appCtx)
	if !gate.Unlock(cfg.Options.Passphrase) {
		return nil, nil, fmt.Errorf("合言葉が一致しないのだ。--passphrase を確認するのだ")
	}

	return appCtx, builder.BuildSession(appCtx), nil
}

// runAnalyze は素材読み込みとAI解析を実行するのだ。
func runAnalyze(ctx context.Context, appCtx *builder.AppContext, session *studio.Session) error {
	extractor, err := builder.BuildExtractor(appCtx)
	if err != nil {
		return err
	}

	slog.Info("Phase 1: 商品解析を開始するのだ...", "images", len(appCtx.Options.ProductImages))
	analyzeRunner := runner.NewAnalyzeRunner(appCtx.Options, appCtx.Loader, extractor, session)
	result, err := analyzeRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("商品解析に失敗したのだ: %w", err)
	}
	slog.Info("分镜が完成したのだ！", "scenes", len(result.Scenes), "hook", result.Hook)
	return nil
}

// restoreSession は storyboard.json からセッション状態を復元するのだ。
func restoreSession(ctx context.Context, appCtx *builder.AppContext, session *studio.Session) error {
	scriptPath, err := asset.ResolveOutputPath(appCtx.Options.OutputDir, asset.DefaultStoryboardJson)
	if err != nil {
		return err
	}
	script, err := appCtx.Loader.LoadScript(ctx, scriptPath)
	if err != nil {
		return fmt.Errorf("分镜スクリプトの復元に失敗したのだ（先に analyze を実行するのだ）: %w", err)
	}

	// 参照画像はフレーム生成の一貫性に必要なので、復元時も読み直すのだ。
	extractor, err := builder.BuildExtractor(appCtx)
	if err != nil {
		return err
	}
	analyzeRunner := runner.NewAnalyzeRunner(appCtx.Options, appCtx.Loader, extractor, session)
	product, err := analyzeRunner.LoadProduct(ctx)
	if err != nil {
		return err
	}
	settings, err := runner.BuildSettings(appCtx.Options)
	if err != nil {
		return err
	}
	session.SetProduct(product)
	if err := session.SetSettings(settings); err != nil {
		return err
	}
	return session.Restore(script)
}

// publish は現在のセッション状態を成果物として保存するのだ。
func publish(ctx context.Context, appCtx *builder.AppContext, session *studio.Session) error {
	pub := builder.BuildPublisher(appCtx)
	result, err := pub.Publish(ctx, session.Analysis(), session.Scenes(), publisher.Options{
		OutputDir: appCtx.Options.OutputDir,
	})
	if err != nil {
		return fmt.Errorf("成果物の保存に失敗したのだ: %w", err)
	}
	slog.Info("保存が完了したのだ！", "json", result.JSONPath, "report", result.MarkdownPath)
	return nil
}
