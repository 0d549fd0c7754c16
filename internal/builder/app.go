package builder

import (
	"github.com/shouni/go-image-prompt/internal/config"
	"github.com/shouni/go-image-prompt/pkg/generator"
	"github.com/shouni/go-image-prompt/pkg/publisher"
	"github.com/shouni/go-image-prompt/pkg/runner"
	"github.com/shouni/go-image-prompt/pkg/style"

	"github.com/shouni/go-http-kit/httpkit"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これをコマンドやメニューに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	// Config は起動時に一度だけ組み立てた不変の設定です。
	Config config.Config

	// HTTPClient は chat completion の通信に使う共通クライアントなのだ。
	HTTPClient httpkit.Doer

	Styles       *style.Menu
	Generator    generator.PromptGenerator
	Publisher    *publisher.PromptPublisher
	SingleRunner *runner.SingleRunner
	BatchRunner  *runner.BatchRunner
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg config.Config,
	httpClient httpkit.Doer,
	gen generator.PromptGenerator,
	pub *publisher.PromptPublisher,
) *AppContext {
	return &AppContext{
		Config:       cfg,
		HTTPClient:   httpClient,
		Styles:       style.NewMenu(),
		Generator:    gen,
		Publisher:    pub,
		SingleRunner: runner.NewSingleRunner(gen, pub),
		BatchRunner:  runner.NewBatchRunner(gen, pub, nil),
	}
}
