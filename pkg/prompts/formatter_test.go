package prompts

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

type fakeRewriter struct {
	output string
	err    error
	calls  int
}

func (f *fakeRewriter) Rewrite(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestFormatterRender(t *testing.T) {
	ctx := context.Background()

	t.Run("plain形式は書き直し結果を返すのだ", func(t *testing.T) {
		rewriter := &fakeRewriter{output: "  A warm cinematic shot of the product.  \n"}
		got, err := NewFormatter(rewriter).Render(ctx, testScene(), domain.FormatPlain)
		if err != nil {
			t.Fatalf("書き直しに失敗: %v", err)
		}
		if got != "A warm cinematic shot of the product." {
			t.Errorf("Render = %q, 前後の空白が除去されていない", got)
		}
		if rewriter.calls != 1 {
			t.Errorf("Rewrite の呼び出し回数 = %d, want 1", rewriter.calls)
		}
	})

	t.Run("plain形式の書き直し失敗はエラーを返すのだ", func(t *testing.T) {
		remoteErr := errors.New("rpc unavailable")
		rewriter := &fakeRewriter{err: remoteErr}
		got, err := NewFormatter(rewriter).Render(ctx, testScene(), domain.FormatPlain)
		if err == nil {
			t.Fatal("リモート失敗なのに err == nil")
		}
		if !errors.Is(err, remoteErr) {
			t.Errorf("元のエラーがラップされていない: %v", err)
		}
		if got != "" {
			t.Errorf("失敗時にプロンプト %q が返された", got)
		}
	})

	t.Run("plain形式の空応答はエラーを返すのだ", func(t *testing.T) {
		rewriter := &fakeRewriter{output: "   \n\t"}
		_, err := NewFormatter(rewriter).Render(ctx, testScene(), domain.FormatPlain)
		if err == nil {
			t.Fatal("空応答なのに err == nil")
		}
	})

	t.Run("manifest形式の書き直し失敗はエラーを返すのだ", func(t *testing.T) {
		remoteErr := errors.New("rpc unavailable")
		rewriter := &fakeRewriter{err: remoteErr}
		_, err := NewFormatter(rewriter).Render(ctx, testScene(), domain.FormatManifest)
		if err == nil {
			t.Fatal("リモート失敗なのに err == nil")
		}
		if !errors.Is(err, remoteErr) {
			t.Errorf("元のエラーがラップされていない: %v", err)
		}
	})

	t.Run("manifest形式は応答を検証してから返すのだ", func(t *testing.T) {
		valid, err := NewManifestSkeleton(testScene()).Encode()
		if err != nil {
			t.Fatalf("雛形のエンコードに失敗: %v", err)
		}
		rewriter := &fakeRewriter{output: valid}
		got, err := NewFormatter(rewriter).Render(ctx, testScene(), domain.FormatManifest)
		if err != nil {
			t.Fatalf("正常なマニフェストが拒否された: %v", err)
		}
		if _, err := ParseManifest(got); err != nil {
			t.Errorf("Render の結果が再パースできない: %v", err)
		}
	})

	t.Run("manifest形式の壊れた応答は拒否するのだ", func(t *testing.T) {
		rewriter := &fakeRewriter{output: `{"version": "4.0"}`}
		_, err := NewFormatter(rewriter).Render(ctx, testScene(), domain.FormatManifest)
		if err == nil {
			t.Fatal("timeline_script を欠く応答なのに err == nil")
		}
	})
}
