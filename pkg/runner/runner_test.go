package runner

import (
	"testing"

	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/domain"
)

func TestBuildSettings(t *testing.T) {
	t.Run("未指定ならデフォルト設定なのだ", func(t *testing.T) {
		settings, err := BuildSettings(config.GenerateOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if settings != domain.DefaultSettings() {
			t.Errorf("settings = %+v, want default", settings)
		}
	})

	t.Run("フラグの値が反映されるのだ", func(t *testing.T) {
		settings, err := BuildSettings(config.GenerateOptions{
			AspectRatio: "16:9",
			Resolution:  "4K",
			Mode:        "intermediate",
			SceneCount:  3,
		})
		if err != nil {
			t.Fatal(err)
		}
		if settings.AspectRatio != domain.Ratio16x9 || settings.Resolution != domain.Resolution4K {
			t.Errorf("画面設定が反映されていない: %+v", settings)
		}
		if settings.Mode != domain.ModeIntermediate || settings.SceneCount != 3 {
			t.Errorf("モード設定が反映されていない: %+v", settings)
		}
	})

	t.Run("不正な値は拒否されるのだ", func(t *testing.T) {
		if _, err := BuildSettings(config.GenerateOptions{Mode: "chaos"}); err == nil {
			t.Error("不明なモードが受理された")
		}
	})
}

func TestParseFrameKind(t *testing.T) {
	cases := []struct {
		in      string
		want    domain.AssetKind
		wantErr bool
	}{
		{"", domain.KindStart, false},
		{"start", domain.KindStart, false},
		{"middle", domain.KindMiddle, false},
		{"end", domain.KindEnd, false},
		{"audio", "", true},
		{"first", "", true},
	}
	for _, tc := range cases {
		got, err := parseFrameKind(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseFrameKind(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("parseFrameKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJoinDescription(t *testing.T) {
	if got := joinDescription("base", "  extracted  "); got != "base\n\nextracted" {
		t.Errorf("joinDescription = %q", got)
	}
	if got := joinDescription("", "text"); got != "text" {
		t.Errorf("joinDescription = %q", got)
	}
	if got := joinDescription("base", "   "); got != "base" {
		t.Errorf("空の抽出結果で説明が壊れた: %q", got)
	}
}
