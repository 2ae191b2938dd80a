package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// AnalysisResult はリモート解析が返す戦略レポートと分镜草案の全体です。
type AnalysisResult struct {
	ProductType    string  `json:"productType"`
	SellingPoints  string  `json:"sellingPoints"`
	TargetAudience string  `json:"targetAudience"`
	Hook           string  `json:"hook"`
	PainPoints     string  `json:"painPoints"`
	Strategy       string  `json:"strategy"`
	AssignedVoice  string  `json:"assignedVoice"`
	Scenes         []Scene `json:"scenes"`
}

// MalformedResponseError は、リモート応答が期待する構造として解釈できなかった
// ことを表します。決定論的な失敗であり、リトライの対象にはなりません。
type MalformedResponseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AI応答の解析に失敗しました (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("AI応答の解析に失敗しました: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ParseAnalysis は解析応答のテキストを AnalysisResult へ変換します。
// Markdown のコードフェンスを除去した上でパースし、必須フィールドが
// 欠けている場合はフェイルクローズで MalformedResponseError を返します。
func ParseAnalysis(raw string) (*AnalysisResult, error) {
	rawJSON := ExtractJSONBlock(raw)

	var result AnalysisResult
	if err := json.Unmarshal([]byte(rawJSON), &result); err != nil {
		return nil, &MalformedResponseError{Reason: "JSONデコード失敗", Raw: truncate(raw, 200), Err: err}
	}
	if err := result.validate(); err != nil {
		return nil, &MalformedResponseError{Reason: err.Error(), Raw: truncate(raw, 200)}
	}

	for i := range result.Scenes {
		if result.Scenes[i].PromptFormat == "" {
			result.Scenes[i].PromptFormat = FormatPlain
		}
	}
	return &result, nil
}

// validate は duck-typed な応答を信用せず、必須フィールドの欠落を拒否します。
func (r *AnalysisResult) validate() error {
	if r.ProductType == "" {
		return fmt.Errorf("productType がありません")
	}
	if r.Strategy == "" {
		return fmt.Errorf("strategy がありません")
	}
	if r.Hook == "" {
		return fmt.Errorf("hook がありません")
	}
	if len(r.Scenes) == 0 {
		return fmt.Errorf("scenes が空です")
	}
	seen := make(map[string]struct{}, len(r.Scenes))
	for i, s := range r.Scenes {
		if s.ID == "" {
			return fmt.Errorf("scene %d: id がありません", i+1)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("scene %d: id %q が重複しています", i+1, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.Visual == "" {
			return fmt.Errorf("scene %d: visual がありません", i+1)
		}
		if s.Prompt.ImagePrompt == "" {
			return fmt.Errorf("scene %d: prompt.imagePrompt がありません", i+1)
		}
	}
	return nil
}

// ExtractJSONBlock は応答テキストからJSON本文を取り出します。
// フェンス付きブロックを優先し、見つからなければ最外周の波括弧で切り出します。
func ExtractJSONBlock(raw string) string {
	raw = strings.TrimSpace(raw)

	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		return raw[first : last+1]
	}
	return raw
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
