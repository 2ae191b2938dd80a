package domain

import "fmt"

// AspectRatio は生成画像・動画の画面比率です。
type AspectRatio string

const (
	Ratio9x16 AspectRatio = "9:16"
	Ratio16x9 AspectRatio = "16:9"
	Ratio1x1  AspectRatio = "1:1"
	Ratio4x3  AspectRatio = "4:3"
	Ratio3x4  AspectRatio = "3:4"
)

// Resolution は生成画像の解像度ティアです。
type Resolution string

const (
	// Resolution1K は標準的な解像度の設定（1024x1024相当）です。
	Resolution1K Resolution = "1K"
	// Resolution2K は高解像度の設定（2048x2048相当）です。
	Resolution2K Resolution = "2K"
	// Resolution4K は超高解像度の設定（4096x4096相当）です。
	Resolution4K Resolution = "4K"
)

// GenerationMode は各シーンに存在し得るフレームの組み合わせを決定します。
type GenerationMode string

const (
	// ModeStandard は首帧のみを生成します。
	ModeStandard GenerationMode = "standard"
	// ModeStartEnd は首帧と尾帧を生成し、シーン間の連続性を維持します。
	ModeStartEnd GenerationMode = "start_end"
	// ModeIntermediate は首帧・中間草稿・尾帧の三段構成です。
	ModeIntermediate GenerationMode = "intermediate"
)

// NeedsEnd は尾帧の生成が必要なモードかどうかを返します。
func (m GenerationMode) NeedsEnd() bool {
	return m == ModeStartEnd || m == ModeIntermediate
}

// NeedsMiddle は中間草稿の生成が必要なモードかどうかを返します。
func (m GenerationMode) NeedsMiddle() bool {
	return m == ModeIntermediate
}

// シーン数の許容範囲なのだ。参照動画がある場合はAI側の判断で上書きされる。
const (
	MinSceneCount = 1
	MaxSceneCount = 10
)

// ClampSceneCount はシーン数を許容範囲 [1, 10] に丸めます。
func ClampSceneCount(n int) int {
	if n < MinSceneCount {
		return MinSceneCount
	}
	if n > MaxSceneCount {
		return MaxSceneCount
	}
	return n
}

// Settings は1セッション分の生成パラメータです。
type Settings struct {
	AspectRatio AspectRatio
	Resolution  Resolution
	Mode        GenerationMode
	SceneCount  int
}

// DefaultSettings は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultSettings() Settings {
	return Settings{
		AspectRatio: Ratio9x16,
		Resolution:  Resolution2K,
		Mode:        ModeStandard,
		SceneCount:  1,
	}
}

// Validate は各列挙値が既知の値かどうかを検査します。
func (s Settings) Validate() error {
	switch s.AspectRatio {
	case Ratio9x16, Ratio16x9, Ratio1x1, Ratio4x3, Ratio3x4:
	default:
		return fmt.Errorf("不明なアスペクト比です: %q", s.AspectRatio)
	}
	switch s.Resolution {
	case Resolution1K, Resolution2K, Resolution4K:
	default:
		return fmt.Errorf("不明な解像度ティアです: %q", s.Resolution)
	}
	switch s.Mode {
	case ModeStandard, ModeStartEnd, ModeIntermediate:
	default:
		return fmt.Errorf("不明な生成モードです: %q", s.Mode)
	}
	return nil
}
