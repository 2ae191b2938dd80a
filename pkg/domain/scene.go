package domain

// AssetKind は生成アセットの種別です。
type AssetKind string

const (
	KindStart  AssetKind = "start"
	KindMiddle AssetKind = "middle"
	KindEnd    AssetKind = "end"
	KindAudio  AssetKind = "audio"
)

// Asset は生成済みの画像または音声データです。
// 履歴は持たず、同じスロットへの再生成は上書きになります。
type Asset struct {
	Kind     AssetKind
	Data     []byte
	MIMEType string
}

// PromptFormat は視覚プロンプトの表現形式です。
type PromptFormat string

const (
	// FormatPlain は単一の自然言語プロンプトです。
	FormatPlain PromptFormat = "plain"
	// FormatManifest は構造化された制作マニフェスト（JSON）です。
	FormatManifest PromptFormat = "manifest"
)

// ScenePrompt はリモートスキーマ上のネスト構造に合わせたプロンプト保持体です。
type ScenePrompt struct {
	ImagePrompt string `json:"imagePrompt"`
}

// Scene は分镜1カット分の台本・プロンプト・生成アセット・進行フラグを保持します。
// ID は生成時に割り当てられ、シーンの生存期間中は不変です。
type Scene struct {
	ID     string `json:"id"`
	Visual string `json:"visual"` // 画面内容（中文）
	Action string `json:"action"` // 動作・演技（中文）
	Camera string `json:"camera"` // 運鏡（中文）
	// Dialogue は米国市場向けの英語セリフです。
	Dialogue string `json:"dialogue"`
	// DialogueTranslation は撮影チーム向けの中文意訳です。生成後は読み取り専用です。
	DialogueTranslation string `json:"dialogue_cn"`

	Prompt       ScenePrompt  `json:"prompt"`
	PromptFormat PromptFormat `json:"promptFormat,omitempty"`

	// 生成アセット。middle は intermediate モードでのみ意味を持ちます。
	StartImage  *Asset `json:"-"`
	MiddleImage *Asset `json:"-"`
	EndImage    *Asset `json:"-"`
	Audio       *Asset `json:"-"`

	// 進行中フラグ。UI/CLI の表示専用で永続化しません。
	GeneratingStart  bool `json:"-"`
	GeneratingMiddle bool `json:"-"`
	GeneratingEnd    bool `json:"-"`
	GeneratingAudio  bool `json:"-"`
	UpdatingPrompt   bool `json:"-"`

	// LastError は直近の失敗メッセージです。新しい試行の開始時にクリアされます。
	LastError string `json:"-"`
}

// FrameAsset は kind に対応する画像スロットを返します。audio は対象外です。
func (s *Scene) FrameAsset(kind AssetKind) *Asset {
	switch kind {
	case KindStart:
		return s.StartImage
	case KindMiddle:
		return s.MiddleImage
	case KindEnd:
		return s.EndImage
	}
	return nil
}

// Clone はアセットのバイト列まで含めた防御的コピーを返します。
// ストアの snapshot 経由でしか外部に出さないための内部ヘルパーです。
func (s Scene) Clone() Scene {
	cp := s
	cp.StartImage = cloneAsset(s.StartImage)
	cp.MiddleImage = cloneAsset(s.MiddleImage)
	cp.EndImage = cloneAsset(s.EndImage)
	cp.Audio = cloneAsset(s.Audio)
	return cp
}

func cloneAsset(a *Asset) *Asset {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Data = make([]byte, len(a.Data))
	copy(cp.Data, a.Data)
	return &cp
}
