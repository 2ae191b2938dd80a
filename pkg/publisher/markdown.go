package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

// BuildStoryboardMarkdown は、解析レポートと分镜を撮影チーム向けの
// Markdown 文字列に整形します。
func BuildStoryboardMarkdown(analysis *domain.AnalysisResult, scenes []domain.Scene) string {
	var sb strings.Builder

	sb.WriteString("# 分镜脚本\n\n")

	if analysis != nil {
		sb.WriteString("## 营销策略\n\n")
		writeField(&sb, "产品类型", analysis.ProductType)
		writeField(&sb, "卖点", analysis.SellingPoints)
		writeField(&sb, "目标人群", analysis.TargetAudience)
		writeField(&sb, "痛点", analysis.PainPoints)
		writeField(&sb, "开场钩子", analysis.Hook)
		writeField(&sb, "策略", analysis.Strategy)
		writeField(&sb, "配音", analysis.AssignedVoice)
		sb.WriteString("\n")
	}

	for i, sc := range scenes {
		fmt.Fprintf(&sb, "## Scene %d (%s)\n\n", i+1, sc.ID)
		writeField(&sb, "画面", sc.Visual)
		writeField(&sb, "动作", sc.Action)
		writeField(&sb, "运镜", sc.Camera)
		if sc.Dialogue != "" {
			writeField(&sb, "台词", sc.Dialogue)
			writeField(&sb, "台词(中文)", sc.DialogueTranslation)
		}
		if sc.LastError != "" {
			writeField(&sb, "⚠ 生成エラー", sc.LastError)
		}

		sb.WriteString("\n```\n")
		sb.WriteString(sc.Prompt.ImagePrompt)
		sb.WriteString("\n```\n\n")
	}
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "- **%s**: %s\n", label, value)
}
