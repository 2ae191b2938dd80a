package storyboard

import "github.com/shouni/go-promo-studio/pkg/domain"

// SceneUpdate は1シーンへの部分更新です。nil のフィールドは変更なしを
// 意味します。Err は空文字列ポインタを渡すとエラー表示のクリアになります。
type SceneUpdate struct {
	Prompt       *string
	PromptFormat *domain.PromptFormat

	StartImage  *domain.Asset
	MiddleImage *domain.Asset
	EndImage    *domain.Asset
	Audio       *domain.Asset

	GeneratingStart  *bool
	GeneratingMiddle *bool
	GeneratingEnd    *bool
	GeneratingAudio  *bool
	UpdatingPrompt   *bool

	Err *string
}

// apply はストアのロック下で呼ばれます。アセットは同一スロットへの上書きです。
func (u SceneUpdate) apply(sc *domain.Scene) {
	if u.Prompt != nil {
		sc.Prompt.ImagePrompt = *u.Prompt
	}
	if u.PromptFormat != nil {
		sc.PromptFormat = *u.PromptFormat
	}
	if u.StartImage != nil {
		sc.StartImage = u.StartImage
	}
	if u.MiddleImage != nil {
		sc.MiddleImage = u.MiddleImage
	}
	if u.EndImage != nil {
		sc.EndImage = u.EndImage
	}
	if u.Audio != nil {
		sc.Audio = u.Audio
	}
	if u.GeneratingStart != nil {
		sc.GeneratingStart = *u.GeneratingStart
	}
	if u.GeneratingMiddle != nil {
		sc.GeneratingMiddle = *u.GeneratingMiddle
	}
	if u.GeneratingEnd != nil {
		sc.GeneratingEnd = *u.GeneratingEnd
	}
	if u.GeneratingAudio != nil {
		sc.GeneratingAudio = *u.GeneratingAudio
	}
	if u.UpdatingPrompt != nil {
		sc.UpdatingPrompt = *u.UpdatingPrompt
	}
	if u.Err != nil {
		sc.LastError = *u.Err
	}
}

func ptr[T any](v T) *T { return &v }
