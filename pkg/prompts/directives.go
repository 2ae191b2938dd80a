package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

const (
	// DirectiveRealism は首帧・尾帧に付与する写実スタイル指示です。
	// 画面内への文字・字幕・透かしの混入を明示的に禁止します。
	DirectiveRealism = " (Photorealistic, 8k uhd, cinematic lighting. NO TEXT, NO SUBTITLES, NO WATERMARK, pure photography.)"

	// DirectiveEndConsistency は尾帧専用の厳格一貫性指示です。
	// 背景と人物を首帧と完全に一致させ、アングルと動作のみの変化を許します。
	DirectiveEndConsistency = " (Final frame of the action. STRICT VISUAL CONSISTENCY REQUIRED: You must use the EXACT SAME BACKGROUND (room, furniture, lighting) and CHARACTER as the provided reference image (Start Frame). Do not change the environment. Same location, different angle/action only.)"

	// DirectiveStartLayoutRef は中間草稿に首帧をレイアウト参照させる指示です。
	DirectiveStartLayoutRef = " (Reference the provided Start Frame for environment layout and character features.)"

	// DirectiveModelRef / DirectiveBackgroundRef はユーザー指定の参照画像を
	// 使うことをプロンプト側からも強制する補助指示です。
	DirectiveModelRef      = " (Use the provided Reference Model image for the character)."
	DirectiveBackgroundRef = " (Use the provided Reference Background image for the environment)."

	// ConsistencyCheckpoints はマニフェストが必ず参照するタイムライン上の
	// 整合性チェックポイントです。文言はリモート側の契約の一部です。
	ConsistencyCheckpoints = "0s, 2s, 4s, 6s"

	// ConsistencyCheckMandate は consistency_check フィールドに入る定型文です。
	ConsistencyCheckMandate = "At " + ConsistencyCheckpoints + ": Ensure absolute consistency in lighting, resolution, and character appearance with the start frame. Do not lower resolution."
)

// SketchDirective は中間草稿用のモノクロ・ラフスケッチ指示を構築します。
// 中間帧は最終レンダーではなく使い捨ての下書きなので、写実化を禁止します。
func SketchDirective(action string) string {
	return fmt.Sprintf(" (Technical storyboard sketch sheet, rough line art style, English annotations only. Break down the action: %s into keyframes. NO realistic photos, NO photorealism, monochrome sketch style.)", action)
}

// FrameContext は参照画像の有無を伝える補助情報です。
type FrameContext struct {
	HasModelRefs      bool
	HasBackgroundRefs bool
	HasStartRef       bool
}

// EffectiveFramePrompt は、シーンの保存プロンプト（または上書きプロンプト）から
// 実際に送信するプロンプトを組み立てます。plain 形式ではフレーム種別ごとの
// 定型スタイル指示を末尾に追加し、manifest 形式では構造化文面が既に同じ
// 義務を符号化しているため、テキストの追加は一切行いません。
func EffectiveFramePrompt(scene domain.Scene, kind domain.AssetKind, override string, fc FrameContext) string {
	prompt := override
	if prompt == "" {
		prompt = scene.Prompt.ImagePrompt
	}

	if scene.PromptFormat == domain.FormatManifest {
		return prompt
	}

	if fc.HasModelRefs && !strings.Contains(prompt, "Reference Model") {
		prompt += DirectiveModelRef
	}
	if fc.HasBackgroundRefs && !strings.Contains(prompt, "Reference Background") {
		prompt += DirectiveBackgroundRef
	}

	switch kind {
	case domain.KindMiddle:
		prompt += SketchDirective(scene.Action)
		if fc.HasStartRef {
			prompt += DirectiveStartLayoutRef
		}
	case domain.KindStart, domain.KindEnd:
		prompt += DirectiveRealism
		if kind == domain.KindEnd {
			prompt += DirectiveEndConsistency
		}
	}
	return prompt
}
