package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

// TextRewriter はプロンプト書き直しに使うテキスト生成の最小インターフェースです。
type TextRewriter interface {
	Rewrite(ctx context.Context, prompt string) (string, error)
}

// Formatter は台本フィールドからフレーム生成用プロンプトを再構成します。
// plain 形式は自然文へ、manifest 形式は構造化JSONへリモートで書き直します。
type Formatter struct {
	rewriter TextRewriter
}

// NewFormatter はリライト用のテキスト生成クライアントを束ねます。
func NewFormatter(rewriter TextRewriter) *Formatter {
	return &Formatter{rewriter: rewriter}
}

// Render は指定形式のプロンプトを生成します。どちらの形式も
// フェイルクローズで、書き直しに失敗した場合はエラーを返します。
func (f *Formatter) Render(ctx context.Context, scene domain.Scene, format domain.PromptFormat) (string, error) {
	switch format {
	case domain.FormatManifest:
		return f.renderManifest(ctx, scene)
	default:
		return f.renderPlain(ctx, scene)
	}
}

func (f *Formatter) renderPlain(ctx context.Context, scene domain.Scene) (string, error) {
	prompt, err := executeTemplate(plainFormatTmpl, plainFormatData{
		Visual:   scene.Visual,
		Action:   scene.Action,
		Camera:   scene.Camera,
		Dialogue: scene.Dialogue,
	})
	if err != nil {
		return "", err
	}

	text, err := f.rewriter.Rewrite(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("プロンプトの書き直しに失敗しました: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("プロンプトの書き直し結果が空でした (scene=%s)", scene.ID)
	}
	return text, nil
}

func (f *Formatter) renderManifest(ctx context.Context, scene domain.Scene) (string, error) {
	skeleton, err := NewManifestSkeleton(scene).Encode()
	if err != nil {
		return "", err
	}

	prompt, err := executeTemplate(manifestFormatTmpl, manifestFormatData{
		Visual:         scene.Visual,
		Action:         scene.Action,
		Camera:         scene.Camera,
		Dialogue:       scene.Dialogue,
		SchemaTemplate: skeleton,
	})
	if err != nil {
		return "", err
	}

	text, err := f.rewriter.Rewrite(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("マニフェストの生成に失敗しました: %w", err)
	}

	manifest, err := ParseManifest(text)
	if err != nil {
		return "", err
	}
	return manifest.Encode()
}
