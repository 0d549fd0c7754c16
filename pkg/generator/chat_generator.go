package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-image-prompt/pkg/domain"
	"github.com/shouni/go-image-prompt/pkg/prompts"

	"github.com/sashabaranov/go-openai"
	"github.com/shouni/go-http-kit/httpkit"
)

// Options は ChatGenerator の接続設定なのだ。
type Options struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	// HTTPClient を指定すると Timeout より優先されるのだ。
	HTTPClient httpkit.Doer
}

// NewHTTPClient は chat completion 用の httpkit クライアントを作るのだ。
// ネットワーク検証は行わないので localhost の LiteLLM にも届くのだ。
// httpkit.Client.Do はリトライしないので、1回の生成で POST は1回だけなのだ。
func NewHTTPClient(timeout time.Duration) *httpkit.Client {
	return httpkit.New(timeout, httpkit.WithSkipNetworkValidation(true))
}

// ChatGenerator は OpenAI 互換の chat completion エンドポイントを呼び出す PromptGenerator です。
type ChatGenerator struct {
	client    *openai.Client
	builder   prompts.PromptBuilder
	apiKey    string
	model     string
	maxTokens int
}

// NewChatGenerator は go-openai のクライアントを組み立てて ChatGenerator を返します。
func NewChatGenerator(opts Options, builder prompts.PromptBuilder) (*ChatGenerator, error) {
	if builder == nil {
		return nil, fmt.Errorf("builder は必須です")
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL は必須です")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("モデル名は必須です")
	}
	if opts.MaxTokens <= 0 {
		return nil, fmt.Errorf("max tokens は正の値である必要があります: %d", opts.MaxTokens)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = NewHTTPClient(opts.Timeout)
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	clientConfig.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	clientConfig.HTTPClient = statusCheckingDoer{client: hc}

	return &ChatGenerator{
		client:    openai.NewClientWithConfig(clientConfig),
		builder:   builder,
		apiKey:    opts.APIKey,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
	}, nil
}

// Generate はプロンプトを構築し、POST を1回だけ送信して最初の choice の本文を返すのだ。
// 失敗は必ず domain.GenerationError に分類して返すのだよ。
func (g *ChatGenerator) Generate(ctx context.Context, req domain.Request) (string, error) {
	normalized, msgs, err := g.builder.Build(req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(g.apiKey) == "" {
		return "", &domain.GenerationError{Kind: domain.KindCredential, Err: errors.New("API key is empty")}
	}

	conv := msgs.Conversation()
	messages := make([]openai.ChatCompletionMessage, 0, len(conv))
	for _, m := range conv {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	slog.DebugContext(ctx, "chat completion を呼び出すのだ",
		"model", g.model,
		"idea", normalized.Idea,
		"style", normalized.Style)

	resp, err := g.client.CreateChatCompletion(ctx, g.newRequest(messages))
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &domain.GenerationError{Kind: domain.KindMalformed, Err: domain.ErrEmptyChoices}
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &domain.GenerationError{Kind: domain.KindMalformed, Err: domain.ErrEmptyContent}
	}
	return content, nil
}

// newRequest は chat completion のリクエストを組み立てるのだ。
// o1/o3/o4/gpt-5 系は max_tokens を受け付けないので、上限を max_completion_tokens で送るのだ。
func (g *ChatGenerator) newRequest(messages []openai.ChatCompletionMessage) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages:  messages,
	}
	if errors.Is(openai.NewReasoningValidator().Validate(req), openai.ErrReasoningModelMaxTokensDeprecated) {
		req.MaxTokens = 0
		req.MaxCompletionTokens = g.maxTokens
	}
	return req
}

// requestRejections は go-openai が送信前に返す検証エラーなのだ。
var requestRejections = []error{
	openai.ErrChatCompletionInvalidModel,
	openai.ErrChatCompletionStreamNotSupported,
	openai.ErrContentFieldsMisused,
	openai.ErrReasoningModelMaxTokensDeprecated,
	openai.ErrReasoningModelLimitationsLogprobs,
	openai.ErrReasoningModelLimitationsOther,
}

// classify は go-openai から返ったエラーを GenerationError に変換します。
func classify(err error) error {
	var se *StatusError
	if errors.As(err, &se) {
		return &domain.GenerationError{Kind: domain.KindStatus, StatusCode: se.Code, Body: se.Body, Err: se}
	}
	for _, rejected := range requestRejections {
		if errors.Is(err, rejected) {
			return &domain.GenerationError{Kind: domain.KindInput, Err: err}
		}
	}
	kind := domain.KindOf(err)
	if kind == domain.KindUnknown {
		slog.Debug("未分類のエラーなのだ", "error", err)
	}
	return &domain.GenerationError{Kind: kind, Err: err}
}
