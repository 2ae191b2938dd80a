package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

func testScene() domain.Scene {
	return domain.Scene{
		ID:       "scene-1",
		Visual:   "夕暮れのキッチンで製品を手に取る",
		Action:   "蓋を開けて香りを確かめる",
		Camera:   "slow push-in",
		Dialogue: "这个香味太治愈了",
		Prompt:   domain.ScenePrompt{ImagePrompt: "a cozy kitchen at dusk"},
	}
}

func TestManifestSkeletonRoundTrip(t *testing.T) {
	t.Run("雛形が整合性チェック定型文を保持するのだ", func(t *testing.T) {
		encoded, err := NewManifestSkeleton(testScene()).Encode()
		if err != nil {
			t.Fatalf("エンコードに失敗: %v", err)
		}
		if !strings.Contains(encoded, ConsistencyCheckpoints) {
			t.Errorf("雛形にチェックポイント %q が含まれていない", ConsistencyCheckpoints)
		}

		parsed, err := ParseManifest(encoded)
		if err != nil {
			t.Fatalf("自前の雛形がパースで拒否された: %v", err)
		}
		if parsed.Production.Version != ManifestVersion {
			t.Errorf("version = %q, want %q", parsed.Production.Version, ManifestVersion)
		}
		if got := parsed.Production.TimelineScript[0].Elements.Visuals.ConsistencyCheck; !strings.Contains(got, ConsistencyCheckpoints) {
			t.Errorf("consistency_check がラウンドトリップで欠落した: %q", got)
		}
	})

	t.Run("台本フィールドがタイムラインへ流し込まれるのだ", func(t *testing.T) {
		scene := testScene()
		m := NewManifestSkeleton(scene)
		seg := m.Production.TimelineScript[0]
		if seg.Elements.Visuals.SubjectAction != scene.Action {
			t.Errorf("subject_action = %q, want %q", seg.Elements.Visuals.SubjectAction, scene.Action)
		}
		if seg.Elements.AudioScape.Dialogue.Transcript != scene.Dialogue {
			t.Errorf("transcript = %q, want %q", seg.Elements.AudioScape.Dialogue.Transcript, scene.Dialogue)
		}
	})
}

func TestParseManifestFailClosed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"JSONでない応答", "すみません、生成できませんでした。"},
		{"versionなし", `{"veo_production_manifest":{"timeline_script":[{"elements":{"visuals":{"consistency_check":"At 0s, 2s, 4s, 6s: ok"}}}]}}`},
		{"タイムラインが空", `{"veo_production_manifest":{"version":"4.0","timeline_script":[]}}`},
		{"チェックポイント欠落", `{"veo_production_manifest":{"version":"4.0","timeline_script":[{"elements":{"visuals":{"consistency_check":"be consistent"}}}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest(tc.raw)
			if err == nil {
				t.Fatal("不正なマニフェストが受理された")
			}
			var malformed *domain.MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Errorf("MalformedResponseError ではないエラー: %v", err)
			}
		})
	}
}

func TestParseManifestStripsFence(t *testing.T) {
	encoded, err := NewManifestSkeleton(testScene()).Encode()
	if err != nil {
		t.Fatalf("エンコードに失敗: %v", err)
	}
	fenced := "```json\n" + encoded + "\n```"
	if _, err := ParseManifest(fenced); err != nil {
		t.Errorf("フェンス付き応答がパースできない: %v", err)
	}
}
