package builder

import (
	"github.com/shouni/go-promo-studio/internal/config"
	"github.com/shouni/go-promo-studio/pkg/asset"
	"github.com/shouni/go-promo-studio/pkg/gemini"

	textgen "github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config      *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options     config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です。
	Reader      remoteio.InputReader    // Readerは、商品画像や参考動画の読み込みに使用する入力元です。
	Writer      remoteio.OutputWriter   // Writerは、生成されたフレームやレポートを保存するための出力先です。
	Loader      *asset.Loader           // Loaderは、素材の読み込みとキャッシュを担います。
	modelClient *gemini.Client          // modelClient は解析・画像生成・音声合成に使う共通クライアント
	textClient  textgen.GenerativeModel // textClient はプロンプト書き直しに使う軽量クライアント
	httpClient  httpkit.ClientInterface // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	modelClient *gemini.Client,
	textClient textgen.GenerativeModel,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
) AppContext {
	return AppContext{
		Config:      cfg,
		Options:     cfg.Options,
		modelClient: modelClient,
		textClient:  textClient,
		httpClient:  httpClient,
		Reader:      reader,
		Writer:      writer,
		Loader:      asset.NewLoader(reader),
	}
}
