package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/go-image-prompt/internal/builder"
	"github.com/shouni/go-image-prompt/internal/config"
	"github.com/shouni/go-image-prompt/internal/menu"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "image-prompt-go"

var (
	v       = config.NewViper()
	cfgFile string

	// appFs はファイルの読み書きに使うファイルシステムなのだ。
	appFs afero.Fs = afero.NewOsFs()

	// appCtx は preRunAppE で組み立てられ、各コマンドから使われるのだ。
	appCtx *builder.AppContext
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "短いアイデアから画像生成AI向けの詳細なプロンプトを作るのだ。",
	Long: `アイデアと画風を OpenAI 互換の chat completion API に送り、
画像生成AI向けの詳細なプロンプトを作るのだ。
引数なしで起動すると対話メニューになるのだよ。`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRunAppE,
	RunE:              interactiveCommand,
}

func init() {
	addAppFlags(rootCmd, v)
	rootCmd.AddCommand(generateCmd, batchCmd)
}

// addAppFlags は、すべてのコマンドに共通するグローバルフラグを定義して viper に結びつけるのだ。
func addAppFlags(cmd *cobra.Command, v *viper.Viper) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "設定ファイル (YAML) のパスなのだ。省略時は ./"+config.DefaultConfigFile+" があれば読むのだ。")

	// --- 接続設定 ---
	pf.String(config.KeyBaseURL, config.DefaultBaseURL, "OpenAI 互換 API のベース URL なのだ。")
	pf.String(config.KeyModel, config.DefaultModel, "使用するモデル名なのだ。")
	pf.Int(config.KeyMaxTokens, config.DefaultMaxTokens, "生成する最大トークン数なのだ。")
	pf.Duration(config.KeyHTTPTimeout, config.DefaultHTTPTimeout, "API リクエストのタイムアウトなのだ。")

	// --- 出力設定 ---
	pf.String(config.KeyOutputDir, config.DefaultOutputDir, "プロンプトファイルを保存するディレクトリなのだ。")
	pf.String(config.KeyBatchFile, config.DefaultBatchFile, "バッチモードの集約ファイル名なのだ。")
	pf.String(config.KeyLogLevel, config.DefaultLogLevel, "ログレベル (debug|info|warn|error) なのだ。")

	for _, key := range []string{
		config.KeyBaseURL,
		config.KeyModel,
		config.KeyMaxTokens,
		config.KeyHTTPTimeout,
		config.KeyOutputDir,
		config.KeyBatchFile,
		config.KeyLogLevel,
	} {
		// 直前に定義したフラグなので Lookup は nil にならないのだ
		_ = v.BindPFlag(key, pf.Lookup(key))
	}
}

// preRunAppE は、コマンド実行前に設定を読み込み、API キーを確認して部品を組み立てるのだ。
func preRunAppE(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(".env の読み込みに失敗しました: %w", err)
	}
	if err := config.ReadConfigFile(appFs, v, cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, uuid.NewString())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if err := config.RequireAPIKey(cfg); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), config.MissingAPIKeyMessage)
		return err
	}

	appCtx, err = builder.BuildAppContext(cfg, appFs)
	if err != nil {
		return err
	}
	slog.Debug("設定を読み込んだのだ", "endpoint", cfg.ChatEndpoint(), "model", cfg.Model, "output_dir", cfg.OutputDir)
	return nil
}

// interactiveCommand は対話メニューを起動するのだ。
func interactiveCommand(cmd *cobra.Command, _ []string) error {
	return menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), appCtx).Run(cmd.Context())
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// API キー未設定の案内は preRunAppE で表示済みなのだ
		if !errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintf(os.Stderr, "\n❌ %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
