// Package publisher は分镜スクリプトと生成アセットの永続化を担います。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-promo-studio/pkg/asset"
	"github.com/shouni/go-promo-studio/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	JSONPath     string   // 生成された storyboard.json のパス
	MarkdownPath string   // 生成された storyboard.md のパス
	FramePaths   []string // 保存された全フレーム画像のパスリスト
	AudioPaths   []string // 保存された全ナレーション音声のパスリスト
}

// StudioPublisher は成果物の永続化とレポート生成を担います。
// 出力先はローカル/GCSのどちらでも構いません。
type StudioPublisher struct {
	writer remoteio.OutputWriter
}

// NewStudioPublisher は書き込みクライアントを束ねます。
func NewStudioPublisher(writer remoteio.OutputWriter) *StudioPublisher {
	return &StudioPublisher{writer: writer}
}

// Publish は分镜JSON・フレーム画像・音声・Markdownレポートを一括保存するのだ！
func (p *StudioPublisher) Publish(ctx context.Context, analysis *domain.AnalysisResult, scenes []domain.Scene, opts Options) (PublishResult, error) {
	result := PublishResult{}

	// 1. 分镜スクリプト (JSON)
	jsonPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultStoryboardJson)
	if err != nil {
		return result, err
	}
	script, err := p.encodeScript(analysis, scenes)
	if err != nil {
		return result, err
	}
	if err := p.writer.Write(ctx, jsonPath, bytes.NewReader(script), "application/json; charset=utf-8"); err != nil {
		return result, fmt.Errorf("分镜スクリプトの書き込みに失敗しました: %w", err)
	}
	result.JSONPath = jsonPath

	// 2. フレーム画像と音声
	for i, sc := range scenes {
		framePaths, err := p.saveFrames(ctx, opts.OutputDir, i+1, sc)
		if err != nil {
			return result, err
		}
		result.FramePaths = append(result.FramePaths, framePaths...)

		if sc.Audio != nil {
			audioPath, err := asset.AudioPath(opts.OutputDir, i+1)
			if err != nil {
				return result, err
			}
			if err := p.writer.Write(ctx, audioPath, bytes.NewReader(sc.Audio.Data), sc.Audio.MIMEType); err != nil {
				return result, fmt.Errorf("音声の書き込みに失敗しました: %w", err)
			}
			result.AudioPaths = append(result.AudioPaths, audioPath)
		}
	}

	// 3. Markdown レポート
	mdPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultStoryboardName)
	if err != nil {
		return result, err
	}
	content := BuildStoryboardMarkdown(analysis, scenes)
	if err := p.writer.Write(ctx, mdPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("レポートの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = mdPath

	slog.Info("成果物を保存したのだ",
		"json", result.JSONPath,
		"frames", len(result.FramePaths),
		"audio", len(result.AudioPaths),
	)
	return result, nil
}

func (p *StudioPublisher) saveFrames(ctx context.Context, outputDir string, sceneIndex int, sc domain.Scene) ([]string, error) {
	var paths []string
	for _, kind := range []domain.AssetKind{domain.KindStart, domain.KindMiddle, domain.KindEnd} {
		frame := sc.FrameAsset(kind)
		if frame == nil {
			continue
		}
		framePath, err := asset.FramePath(outputDir, sceneIndex, string(kind))
		if err != nil {
			return nil, err
		}
		mime := frame.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		if err := p.writer.Write(ctx, framePath, bytes.NewReader(frame.Data), mime); err != nil {
			return nil, fmt.Errorf("フレーム画像の書き込みに失敗しました: %w", err)
		}
		paths = append(paths, framePath)
	}
	return paths, nil
}

func (p *StudioPublisher) encodeScript(analysis *domain.AnalysisResult, scenes []domain.Scene) ([]byte, error) {
	// Analysis にもシーン草案が含まれますが、JSONには編集後の最新状態を
	// 載せたいので scenes を正とします。
	script := domain.StoryboardScript{Analysis: analysis, Scenes: scenes}
	if script.Analysis != nil {
		cp := *analysis
		cp.Scenes = nil
		script.Analysis = &cp
	}
	data, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("分镜スクリプトのエンコードに失敗しました: %w", err)
	}
	return data, nil
}
