// Package asset は入力素材の読み込みと出力先パスの解決を担います。
package asset

import (
	"fmt"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultFrameDir は生成されたフレーム画像を格納するディレクトリ名です。
	DefaultFrameDir = "frames"
	// DefaultAudioDir は生成されたナレーション音声を格納するディレクトリ名です。
	DefaultAudioDir = "audio"
	// DefaultStoryboardJson は分镜スクリプトのデフォルト JSON ファイル名です。
	DefaultStoryboardJson = "storyboard.json"
	// DefaultStoryboardName は分镜レポートのデフォルト Markdown ファイル名です。
	DefaultStoryboardName = "storyboard.md"
	// DefaultFrameFileName はフレーム画像の共通のベースファイル名です。
	DefaultFrameFileName = "frame.png"
	// DefaultAudioFileName はナレーション音声の共通のベースファイル名です。
	DefaultAudioFileName = "narration.wav"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// FramePath はシーン番号とフレーム種別から出力パスを組み立てます。
// 例: ("gs://bucket/out", 2, "end") -> gs://bucket/out/frames/frame_2_end.png
func FramePath(baseDir string, sceneIndex int, kind string) (string, error) {
	dir, err := urlpath.ResolvePath(baseDir, DefaultFrameDir)
	if err != nil {
		return "", err
	}
	return urlpath.ResolvePath(dir, fmt.Sprintf("frame_%d_%s.png", sceneIndex, kind))
}

// AudioPath はシーン番号から音声の出力パスを組み立てます。
func AudioPath(baseDir string, sceneIndex int) (string, error) {
	dir, err := urlpath.ResolvePath(baseDir, DefaultAudioDir)
	if err != nil {
		return "", err
	}
	indexed, err := urlpath.GenerateIndexedPath(DefaultAudioFileName, sceneIndex)
	if err != nil {
		return "", err
	}
	return urlpath.ResolvePath(dir, indexed)
}
