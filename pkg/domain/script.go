package domain

// StoryboardScript は storyboard.json として永続化されるセッション状態です。
// Analysis 側の Scenes は保存時に空にし、編集後の最新状態を Scenes に持ちます。
type StoryboardScript struct {
	Analysis *AnalysisResult `json:"analysis"`
	Scenes   []Scene         `json:"scenes"`
}
