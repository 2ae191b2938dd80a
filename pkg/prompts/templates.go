package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

// プロンプトの原稿は .md で管理し、ビルド時に埋め込みます。

//go:embed analysis_system.md
var analysisSystemSource string

//go:embed plain_format.md
var plainFormatSource string

//go:embed manifest_format.md
var manifestFormatSource string

var (
	plainFormatTmpl    = template.Must(template.New("plain_format").Parse(plainFormatSource))
	manifestFormatTmpl = template.Must(template.New("manifest_format").Parse(manifestFormatSource))
)

// AnalysisSystemInstruction は商品解析エージェントのシステム指示を返します。
func AnalysisSystemInstruction() string {
	return analysisSystemSource
}

// plainFormatData は plain_format.md に流し込む台本フィールドです。
type plainFormatData struct {
	Visual   string
	Action   string
	Camera   string
	Dialogue string
}

// manifestFormatData は manifest_format.md に流し込むデータです。
type manifestFormatData struct {
	Visual         string
	Action         string
	Camera         string
	Dialogue       string
	SchemaTemplate string
}

func executeTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("テンプレート %q の展開に失敗しました: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
