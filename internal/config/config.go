package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/go-utils/envutil"
	"github.com/spf13/viper"
)

// デフォルト値の定義なのだ
const (
	DefaultBaseURL     = "https://litellm.koboi2026.biz.id/v1"
	DefaultModel       = "gpt-4o"
	DefaultMaxTokens   = 1024
	DefaultHTTPTimeout = 60 * time.Second
	DefaultOutputDir   = "."
	DefaultBatchFile   = "batch_prompts.txt"
	DefaultLogLevel    = "warn"
	DefaultConfigFile  = "image-prompt.yaml"

	chatCompletionsPath = "/chat/completions"
)

// APIKeyEnv は API キーを読み込む唯一の環境変数なのだ。
const APIKeyEnv = "LITELLM_API_KEY"

// viper のキー名です。フラグ名と揃えているのだ。
const (
	KeyBaseURL     = "base-url"
	KeyModel       = "model"
	KeyMaxTokens   = "max-tokens"
	KeyHTTPTimeout = "http-timeout"
	KeyOutputDir   = "output-dir"
	KeyBatchFile   = "batch-file"
	KeyLogLevel    = "log-level"
)

// envBindings は viper キーと環境変数名の対応表なのだ。
var envBindings = map[string]string{
	KeyBaseURL:     "PROMPT_BASE_URL",
	KeyModel:       "PROMPT_MODEL",
	KeyMaxTokens:   "PROMPT_MAX_TOKENS",
	KeyHTTPTimeout: "PROMPT_HTTP_TIMEOUT",
	KeyOutputDir:   "PROMPT_OUTPUT_DIR",
	KeyBatchFile:   "PROMPT_BATCH_FILE",
	KeyLogLevel:    "PROMPT_LOG_LEVEL",
}

// ErrMissingAPIKey は LITELLM_API_KEY が設定されていない場合のエラーです。
var ErrMissingAPIKey = errors.New("environment variable " + APIKeyEnv + " is not set")

// MissingAPIKeyMessage は API キー未設定時にユーザーへ表示する案内文なのだ。
const MissingAPIKeyMessage = "\n❌ ERROR: " + APIKeyEnv + " tidak ditemukan!\n" +
	"   Set dulu dengan perintah:\n" +
	"   Windows : set " + APIKeyEnv + "=your_api_key_here\n" +
	"   Mac/Linux: export " + APIKeyEnv + "=your_api_key_here\n"

// Config はアプリケーション全体の設定を保持する構造体なのだ。
// 起動時に一度だけ作られ、その後は変更されないのだよ。
type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	MaxTokens   int
	HTTPTimeout time.Duration
	OutputDir   string
	BatchFile   string
	LogLevel    string
}

// ChatEndpoint は BaseURL から導出した chat completions のエンドポイントを返します。
func (c Config) ChatEndpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + chatCompletionsPath
}

// Validate は設定値の整合性を検査するのだ。API キーの有無は RequireAPIKey で見るのだ。
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base URL の解析に失敗しました (%s): %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL は http(s) の絶対 URL である必要があります: %q", c.BaseURL)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("モデル名が空です")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens は正の値である必要があります: %d", c.MaxTokens)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP タイムアウトは正の値である必要があります: %s", c.HTTPTimeout)
	}
	if strings.TrimSpace(c.BatchFile) == "" {
		return fmt.Errorf("バッチ出力ファイル名が空です")
	}
	return nil
}

// RequireAPIKey は API キーが設定されていなければ ErrMissingAPIKey を返します。
func RequireAPIKey(c Config) error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// NewViper は既定値と環境変数の割り当てを済ませた viper インスタンスを返すのだ。
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	for key, env := range envBindings {
		// BindEnv は引数があるときにしかエラーを返さないのだ
		_ = v.BindEnv(key, env)
	}
	return v
}

// setDefaults は各設定の既定値を登録します。
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyModel, DefaultModel)
	v.SetDefault(KeyMaxTokens, DefaultMaxTokens)
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyBatchFile, DefaultBatchFile)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// Load は viper に積まれた値 (フラグ > 環境変数 > 設定ファイル > 既定値) と
// 環境変数の API キーから Config を組み立てて検証するのだ！
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:     strings.TrimSpace(v.GetString(KeyBaseURL)),
		Model:       strings.TrimSpace(v.GetString(KeyModel)),
		APIKey:      strings.TrimSpace(envutil.GetEnv(APIKeyEnv, "")),
		MaxTokens:   v.GetInt(KeyMaxTokens),
		HTTPTimeout: v.GetDuration(KeyHTTPTimeout),
		OutputDir:   v.GetString(KeyOutputDir),
		BatchFile:   v.GetString(KeyBatchFile),
		LogLevel:    v.GetString(KeyLogLevel),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("設定が不正です: %w", err)
	}
	return cfg, nil
}
