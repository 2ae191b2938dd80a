package studio

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/gemini"
)

type fakeRemote struct {
	analyzeCalls []struct {
		sceneCount int
		voice      string
	}
	scenes []domain.Scene
}

func (f *fakeRemote) Analyze(ctx context.Context, product domain.ProductContext, sceneCount int, voice string) (*domain.AnalysisResult, error) {
	f.analyzeCalls = append(f.analyzeCalls, struct {
		sceneCount int
		voice      string
	}{sceneCount, voice})
	return &domain.AnalysisResult{
		ProductType:   "香氛蜡烛",
		Strategy:      "pain point",
		Hook:          "你还在用普通蜡烛吗？",
		AssignedVoice: voice,
		Scenes:        f.scenes,
	}, nil
}

func (f *fakeRemote) RenderImage(ctx context.Context, req gemini.ImageRequest) (*domain.Asset, error) {
	return &domain.Asset{Data: []byte{1}, MIMEType: "image/png"}, nil
}

func (f *fakeRemote) SynthesizeSpeech(ctx context.Context, dialogue, voice string) (*domain.Asset, error) {
	return &domain.Asset{Kind: domain.KindAudio, Data: []byte{2}, MIMEType: "audio/wav"}, nil
}

type fakeFormatter struct {
	output string
	err    error
}

func (f *fakeFormatter) Render(ctx context.Context, scene domain.Scene, format domain.PromptFormat) (string, error) {
	return f.output, f.err
}

func twoScenes() []domain.Scene {
	return []domain.Scene{
		{ID: "s1", Visual: "開封", Prompt: domain.ScenePrompt{ImagePrompt: "p1"}, PromptFormat: domain.FormatPlain},
		{ID: "s2", Visual: "使用", Prompt: domain.ScenePrompt{ImagePrompt: "p2"}, PromptFormat: domain.FormatPlain},
	}
}

func validProduct() domain.ProductContext {
	return domain.ProductContext{Images: [][]byte{{0xA}}}
}

func TestSessionAnalyze(t *testing.T) {
	t.Run("解析結果でストアが初期化されるのだ", func(t *testing.T) {
		remote := &fakeRemote{scenes: twoScenes()}
		session := NewSession(remote, &fakeFormatter{}, nil)
		session.SetProduct(validProduct())

		result, err := session.Analyze(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Scenes) != 2 || len(session.Scenes()) != 2 {
			t.Errorf("シーン数 = %d/%d, want 2/2", len(result.Scenes), len(session.Scenes()))
		}
		if session.Composer() == nil {
			t.Error("解析後も编排器が nil のまま")
		}
	})

	t.Run("商品画像なしは即時拒否なのだ", func(t *testing.T) {
		remote := &fakeRemote{scenes: twoScenes()}
		session := NewSession(remote, &fakeFormatter{}, nil)

		_, err := session.Analyze(context.Background())
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ValidationError ではない: %v", err)
		}
		if len(remote.analyzeCalls) != 0 {
			t.Error("検証エラーなのにリモートが呼ばれた")
		}
	})

	t.Run("音声は再解析しても変わらないのだ", func(t *testing.T) {
		remote := &fakeRemote{scenes: twoScenes()}
		session := NewSession(remote, &fakeFormatter{}, nil)
		session.SetProduct(validProduct())

		if _, err := session.Analyze(context.Background()); err != nil {
			t.Fatal(err)
		}
		if _, err := session.Analyze(context.Background()); err != nil {
			t.Fatal(err)
		}
		if len(remote.analyzeCalls) != 2 {
			t.Fatalf("解析回数 = %d, want 2", len(remote.analyzeCalls))
		}
		first, second := remote.analyzeCalls[0].voice, remote.analyzeCalls[1].voice
		if first != second {
			t.Errorf("セッション音声が揺れた: %q vs %q", first, second)
		}
		if !domain.IsValidVoice(first) {
			t.Errorf("抽選された音声が列挙外: %q", first)
		}
	})

	t.Run("参考動画モードはシーン数設定を上書きするのだ", func(t *testing.T) {
		scenes := []domain.Scene{
			{ID: "v1", Visual: "a", Prompt: domain.ScenePrompt{ImagePrompt: "x"}},
			{ID: "v2", Visual: "b", Prompt: domain.ScenePrompt{ImagePrompt: "y"}},
			{ID: "v3", Visual: "c", Prompt: domain.ScenePrompt{ImagePrompt: "z"}},
		}
		remote := &fakeRemote{scenes: scenes}
		session := NewSession(remote, &fakeFormatter{}, nil)
		product := validProduct()
		product.ReferenceVideo = &domain.ReferenceVideo{Data: []byte{1}, MIMEType: "video/mp4"}
		session.SetProduct(product)
		session.AdjustSceneCount(5)

		if _, err := session.Analyze(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := session.Settings().SceneCount; got != 3 {
			t.Errorf("シーン数 = %d, want 3 (動画側の判断)", got)
		}
	})
}

func TestSessionSettings(t *testing.T) {
	session := NewSession(&fakeRemote{}, &fakeFormatter{}, nil)

	t.Run("シーン数は許容範囲へ丸められるのだ", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.SceneCount = 99
		if err := session.SetSettings(settings); err != nil {
			t.Fatal(err)
		}
		if got := session.Settings().SceneCount; got != domain.MaxSceneCount {
			t.Errorf("SceneCount = %d, want %d", got, domain.MaxSceneCount)
		}
	})

	t.Run("不正な列挙値は拒否されるのだ", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.Resolution = "8K"
		if err := session.SetSettings(settings); err == nil {
			t.Error("不正な解像度が受理された")
		}
	})
}

func TestSwitchPromptFormat(t *testing.T) {
	newSession := func(f *fakeFormatter) *Session {
		remote := &fakeRemote{scenes: twoScenes()}
		session := NewSession(remote, f, nil)
		session.SetProduct(validProduct())
		if _, err := session.Analyze(context.Background()); err != nil {
			t.Fatal(err)
		}
		return session
	}

	t.Run("成功時はプロンプトと形式が両方切り替わるのだ", func(t *testing.T) {
		session := newSession(&fakeFormatter{output: `{"veo_production_manifest":{}}`})
		if err := session.SwitchPromptFormat(context.Background(), "s1", domain.FormatManifest); err != nil {
			t.Fatal(err)
		}
		sc := session.Scenes()[0]
		if sc.PromptFormat != domain.FormatManifest {
			t.Errorf("形式 = %q, want manifest", sc.PromptFormat)
		}
		if sc.Prompt.ImagePrompt != `{"veo_production_manifest":{}}` {
			t.Errorf("プロンプトが差し替わっていない: %q", sc.Prompt.ImagePrompt)
		}
	})

	t.Run("失敗時は元のプロンプトと形式が残るのだ", func(t *testing.T) {
		session := newSession(&fakeFormatter{err: errors.New("生成に失敗")})
		if err := session.SwitchPromptFormat(context.Background(), "s1", domain.FormatManifest); err == nil {
			t.Fatal("エラーが返らなかった")
		}
		sc := session.Scenes()[0]
		if sc.PromptFormat != domain.FormatPlain || sc.Prompt.ImagePrompt != "p1" {
			t.Error("失敗時にシーンの状態が壊れた")
		}
		if sc.LastError == "" {
			t.Error("失敗がシーンに記録されていない")
		}
	})

	t.Run("plainへの切り替え失敗もmanifest形式を維持するのだ", func(t *testing.T) {
		formatter := &fakeFormatter{output: `{"veo_production_manifest":{}}`}
		session := newSession(formatter)
		if err := session.SwitchPromptFormat(context.Background(), "s1", domain.FormatManifest); err != nil {
			t.Fatal(err)
		}
		formatter.err = errors.New("書き直しに失敗")
		if err := session.SwitchPromptFormat(context.Background(), "s1", domain.FormatPlain); err == nil {
			t.Fatal("エラーが返らなかった")
		}
		sc := session.Scenes()[0]
		if sc.PromptFormat != domain.FormatManifest {
			t.Errorf("失敗したのに形式が %q に変わった", sc.PromptFormat)
		}
		if sc.Prompt.ImagePrompt != `{"veo_production_manifest":{}}` {
			t.Errorf("失敗したのにプロンプトが変わった: %q", sc.Prompt.ImagePrompt)
		}
		if sc.LastError == "" {
			t.Error("失敗がシーンに記録されていない")
		}
	})

	t.Run("同じ形式への切り替えは何もしないのだ", func(t *testing.T) {
		formatter := &fakeFormatter{output: "should not be used"}
		session := newSession(formatter)
		if err := session.SwitchPromptFormat(context.Background(), "s1", domain.FormatPlain); err != nil {
			t.Fatal(err)
		}
		if got := session.Scenes()[0].Prompt.ImagePrompt; got != "p1" {
			t.Errorf("同一形式なのにプロンプトが変わった: %q", got)
		}
	})
}

func TestAccessGate(t *testing.T) {
	t.Run("合言葉未設定なら素通しなのだ", func(t *testing.T) {
		gate := NewAccessGate("")
		if gate.Enabled() {
			t.Error("無効のはずのゲートが有効になっている")
		}
		if !gate.Unlock("anything") {
			t.Error("無効なゲートで弾かれた")
		}
	})

	t.Run("合言葉の照合なのだ", func(t *testing.T) {
		gate := NewAccessGate("open-sesame")
		if gate.Unlock("wrong") {
			t.Error("間違った合言葉で通過できた")
		}
		if !gate.Unlock("open-sesame") {
			t.Error("正しい合言葉で弾かれた")
		}
	})
}
