package studio

import "crypto/subtle"

// AccessGate はスタジオ利用前の簡易な合言葉チェックです。
// 合言葉が未設定ならゲートは無効で、誰でも通過できます。
// 本格的な認証の代替ではなく、限定公開時の抑止に使う想定です。
type AccessGate struct {
	passphrase string
}

// NewAccessGate は合言葉つきのゲートを生成します。空文字列で無効化です。
func NewAccessGate(passphrase string) *AccessGate {
	return &AccessGate{passphrase: passphrase}
}

// Enabled はゲートが有効かどうかを返します。
func (g *AccessGate) Enabled() bool {
	return g.passphrase != ""
}

// Unlock は合言葉を照合します。比較は一定時間で行います。
func (g *AccessGate) Unlock(input string) bool {
	if !g.Enabled() {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(g.passphrase), []byte(input)) == 1
}
