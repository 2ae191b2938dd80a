package domain

import "fmt"

// ReferenceVideo はスタイル・テンポの参考として解析に渡す動画データです。
type ReferenceVideo struct {
	Data     []byte
	MIMEType string
}

// ProductContext は1セッションの間は不変の入力素材一式です。
// 視覚的な一貫性が必要なすべてのリモート呼び出しの根拠になります。
type ProductContext struct {
	// Images は商品画像（必須、1枚以上）です。
	Images [][]byte
	// ModelImages は指定モデルの参照画像（任意）です。
	// 全シーンで同一人物の特徴を強制するために使います。
	ModelImages [][]byte
	// BackgroundImages は指定背景の参照画像（任意）です。
	BackgroundImages [][]byte
	// ReferenceVideo はテンポ・構成を模倣する参考動画（任意）です。
	// 指定された場合、シーン数はAI側の判断が優先されます。
	ReferenceVideo *ReferenceVideo

	Title         string
	Description   string
	CreativeIdeas string
}

// ValidationError は、リモート呼び出し前の入力検証で弾かれたことを表します。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("入力検証エラー: %s", e.Reason)
}

// Validate は解析開始前の最低条件を検査します。商品画像ゼロは即時拒否です。
func (p ProductContext) Validate() error {
	if len(p.Images) == 0 {
		return &ValidationError{Reason: "商品画像が1枚も指定されていません"}
	}
	return nil
}

// HasReferenceVideo は参考動画が添付されているかどうかを返します。
func (p ProductContext) HasReferenceVideo() bool {
	return p.ReferenceVideo != nil && len(p.ReferenceVideo.Data) > 0
}
