package builder

import (
	"fmt"

	"github.com/shouni/go-image-prompt/internal/config"
	"github.com/shouni/go-image-prompt/pkg/generator"
	"github.com/shouni/go-image-prompt/pkg/prompts"
	"github.com/shouni/go-image-prompt/pkg/publisher"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/spf13/afero"
)

// BuildAppContext は設定とファイルシステムからすべての部品を組み立てるのだ。
func BuildAppContext(cfg config.Config, fs afero.Fs) (*AppContext, error) {
	httpClient := generator.NewHTTPClient(cfg.HTTPTimeout)
	gen, err := InitializeGenerator(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	pub, err := InitializePublisher(cfg, fs)
	if err != nil {
		return nil, err
	}
	return NewAppContext(cfg, httpClient, gen, pub), nil
}

// InitializeGenerator は chat completion 用の生成器を初期化します。
func InitializeGenerator(cfg config.Config, httpClient httpkit.Doer) (*generator.ChatGenerator, error) {
	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの作成に失敗しました: %w", err)
	}

	gen, err := generator.NewChatGenerator(generator.Options{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxTokens:  cfg.MaxTokens,
		Timeout:    cfg.HTTPTimeout,
		HTTPClient: httpClient,
	}, pb)
	if err != nil {
		return nil, fmt.Errorf("生成器の初期化に失敗しました: %w", err)
	}
	return gen, nil
}

// InitializePublisher は出力先ディレクトリを反映したパブリッシャーを初期化します。
func InitializePublisher(cfg config.Config, fs afero.Fs) (*publisher.PromptPublisher, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	pub, err := publisher.NewPromptPublisher(fs, publisher.Options{
		OutputDir: cfg.OutputDir,
		BatchFile: cfg.BatchFile,
	})
	if err != nil {
		return nil, fmt.Errorf("パブリッシャーの初期化に失敗しました: %w", err)
	}
	return pub, nil
}
