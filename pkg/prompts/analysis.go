package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

// BuildAnalysisPrompt は商品コンテキストから解析リクエストの本文を組み立てます。
// 添付メディアの内訳(商品・モデル・背景・参考動画)を明示し、モデル側の
// 画像グループ解釈のズレを防ぎます。
func BuildAnalysisPrompt(product domain.ProductContext, sceneCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "附件包含 %d 张产品图片", len(product.Images))
	if len(product.ModelImages) > 0 {
		fmt.Fprintf(&b, "、%d 张模特参考图片", len(product.ModelImages))
	}
	if len(product.BackgroundImages) > 0 {
		fmt.Fprintf(&b, "、%d 张背景参考图片", len(product.BackgroundImages))
	}
	if product.HasReferenceVideo() {
		b.WriteString("、以及 1 个参考视频")
	}
	b.WriteString("。\n")

	if product.Title != "" {
		fmt.Fprintf(&b, "产品标题: %s\n", product.Title)
	}
	if product.Description != "" {
		fmt.Fprintf(&b, "产品描述: %s\n", product.Description)
	}
	if product.CreativeIdeas != "" {
		fmt.Fprintf(&b, "用户创意方向(必须优先满足): %s\n", product.CreativeIdeas)
	}

	if product.HasReferenceVideo() {
		// 参考動画がある場合はシーン数をモデル側の判断に委ねます。
		b.WriteString("\n【参考视频模式】请逐帧分析参考视频的叙事结构、节奏和镜头语言," +
			"并以此为蓝本规划分镜。场景数量由视频内容决定,忽略用户指定的场景数。\n")
	} else {
		fmt.Fprintf(&b, "\n请严格生成 %d 个场景的分镜脚本。\n", sceneCount)
	}

	b.WriteString("输出必须是单个合法的 JSON 对象,不要包含任何其他文本。")
	return b.String()
}
