package gemini

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrNoImageReturned は、転送自体は成功したが応答に画像ペイロードが
	// 含まれていなかったことを表します。リトライの対象外です。
	ErrNoImageReturned = errors.New("未能生成图片：応答に画像データが含まれていません")

	// ErrNoAudioReturned はTTS応答に音声データが含まれていなかったことを表します。
	ErrNoAudioReturned = errors.New("TTSサービスが音声データを返しませんでした")
)

// IsTransportUnavailable は、リトライで回復し得る転送系の失敗かどうかを判定します。
// 過負荷(503)・内部エラー(500)・レート制限(429) をステータスコードまたは
// メッセージ内容で照合します。それ以外（認証・不正入力・解析不能な応答）は
// 決定論的な失敗なので即時に伝播させます。
func IsTransportUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 503:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"overloaded", "unavailable", "resource_exhausted", "internal error"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
