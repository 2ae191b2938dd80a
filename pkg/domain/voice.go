package domain

import "math/rand/v2"

// DefaultVoice は未知の声名が指定された場合のフォールバック先です。
const DefaultVoice = "Kore"

// VoiceOptions はTTSが受け付ける固定の声名リストです。
// リモート側の列挙と一致させる必要があるため、変更時は注意してください。
var VoiceOptions = []string{"Kore", "Fenrir", "Puck", "Charon", "Zephyr"}

// IsValidVoice は声名が既知の列挙に含まれるかどうかを返します。
func IsValidVoice(name string) bool {
	for _, v := range VoiceOptions {
		if v == name {
			return true
		}
	}
	return false
}

// NormalizeVoice は未知の声名をデフォルトに黙ってフォールバックします。
// TTS呼び出しを声名の揺れで失敗させないための仕様です。
func NormalizeVoice(name string) string {
	if IsValidVoice(name) {
		return name
	}
	return DefaultVoice
}

// PickSessionVoice はセッション開始時に1度だけ使う声をランダムに選びます。
// 解析を再実行しても台本と声の対応が揺れないよう、選択は呼び出し側が保持します。
func PickSessionVoice() string {
	return VoiceOptions[rand.IntN(len(VoiceOptions))]
}
