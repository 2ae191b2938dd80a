package storyboard

import (
	"github.com/shouni/go-promo-studio/pkg/domain"
	"github.com/shouni/go-promo-studio/pkg/prompts"
)

// maxProductRefs は参照に混ぜる商品画像の枚数上限です。モデル・背景の
// 参照枠を潰さないよう先頭2枚までに抑えます。
const maxProductRefs = 2

// frameReferences はフレーム種別ごとの参照画像列を優先度順に組み立てます。
// 尾帧・中間草稿では首帧が最優先の参照として先頭に入ります。
// 実際の枚数上限の切り詰めはクライアント側で行われます。
func (c *SceneComposer) frameReferences(sc domain.Scene, kind domain.AssetKind) ([][]byte, prompts.FrameContext) {
	refs := make([][]byte, 0, 8)
	fc := prompts.FrameContext{
		HasModelRefs:      len(c.product.ModelImages) > 0,
		HasBackgroundRefs: len(c.product.BackgroundImages) > 0,
	}

	refs = append(refs, c.product.ModelImages...)
	refs = append(refs, c.product.BackgroundImages...)
	for i, img := range c.product.Images {
		if i >= maxProductRefs {
			break
		}
		refs = append(refs, img)
	}

	if kind == domain.KindEnd || kind == domain.KindMiddle {
		if start := sc.StartImage; start != nil {
			// 首帧は整合性の基準なので他のどの参照よりも先に置きます。
			refs = append([][]byte{start.Data}, refs...)
			fc.HasStartRef = true
		}
		if kind == domain.KindMiddle {
			if end := sc.EndImage; end != nil {
				refs = append(refs, end.Data)
			}
		}
	}
	return refs, fc
}
