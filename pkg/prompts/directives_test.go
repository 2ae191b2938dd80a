package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

func TestEffectiveFramePrompt(t *testing.T) {
	scene := testScene()

	t.Run("manifest形式は指示文をそのまま返すのだ", func(t *testing.T) {
		s := scene
		s.PromptFormat = domain.FormatManifest
		s.Prompt.ImagePrompt = `{"veo_production_manifest":{}}`
		got := EffectiveFramePrompt(s, domain.KindStart, "", FrameContext{HasModelRefs: true})
		if got != s.Prompt.ImagePrompt {
			t.Errorf("manifest プロンプトが書き換えられた: %q", got)
		}
	})

	t.Run("開始フレームは実写指示が付くのだ", func(t *testing.T) {
		got := EffectiveFramePrompt(scene, domain.KindStart, "", FrameContext{})
		if !strings.Contains(got, DirectiveRealism) {
			t.Error("実写指示が付与されていない")
		}
		if strings.Contains(got, DirectiveEndConsistency) {
			t.Error("開始フレームに終端用の整合性指示が混入した")
		}
	})

	t.Run("終了フレームは整合性指示が付くのだ", func(t *testing.T) {
		got := EffectiveFramePrompt(scene, domain.KindEnd, "", FrameContext{})
		if !strings.Contains(got, DirectiveEndConsistency) {
			t.Error("終端用の整合性指示が付与されていない")
		}
	})

	t.Run("中間フレームはスケッチ指示と開始レイアウト参照なのだ", func(t *testing.T) {
		got := EffectiveFramePrompt(scene, domain.KindMiddle, "", FrameContext{HasStartRef: true})
		if !strings.Contains(got, scene.Action) {
			t.Error("スケッチ指示に action が反映されていない")
		}
		if !strings.Contains(got, DirectiveStartLayoutRef) {
			t.Error("開始レイアウト参照の指示がない")
		}
	})

	t.Run("参照画像の指示は文脈がある時だけ付くのだ", func(t *testing.T) {
		withRefs := EffectiveFramePrompt(scene, domain.KindStart, "", FrameContext{HasModelRefs: true, HasBackgroundRefs: true})
		if !strings.Contains(withRefs, DirectiveModelRef) || !strings.Contains(withRefs, DirectiveBackgroundRef) {
			t.Error("参照画像の指示が付与されていない")
		}
		without := EffectiveFramePrompt(scene, domain.KindStart, "", FrameContext{})
		if strings.Contains(without, DirectiveModelRef) || strings.Contains(without, DirectiveBackgroundRef) {
			t.Error("参照画像が無いのに指示が付与された")
		}
	})

	t.Run("上書きプロンプトが基底になるのだ", func(t *testing.T) {
		got := EffectiveFramePrompt(scene, domain.KindStart, "手書きの差し替えプロンプト", FrameContext{})
		if !strings.Contains(got, "手書きの差し替えプロンプト") {
			t.Error("上書きプロンプトが使われていない")
		}
		if strings.Contains(got, scene.Prompt.ImagePrompt) {
			t.Error("上書き時に元のプロンプトが残っている")
		}
	})
}

func TestBuildAnalysisPrompt(t *testing.T) {
	product := domain.ProductContext{
		Images:      [][]byte{{0x1}, {0x2}},
		ModelImages: [][]byte{{0x3}},
		Title:       "香氛蜡烛",
	}

	t.Run("シーン数の厳守を指示するのだ", func(t *testing.T) {
		got := BuildAnalysisPrompt(product, 4)
		if !strings.Contains(got, "4 个场景") {
			t.Errorf("シーン数の指示がない: %q", got)
		}
	})

	t.Run("参考動画がある時はシーン数指定を無効化するのだ", func(t *testing.T) {
		p := product
		p.ReferenceVideo = &domain.ReferenceVideo{Data: []byte{0x9}, MIMEType: "video/mp4"}
		got := BuildAnalysisPrompt(p, 4)
		if strings.Contains(got, "4 个场景") {
			t.Error("参考動画モードでも固定シーン数が指示されている")
		}
		if !strings.Contains(got, "参考视频") {
			t.Error("参考動画の分析指示がない")
		}
	})
}
