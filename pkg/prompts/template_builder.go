package prompts

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-image-prompt/pkg/domain"
)

// TextPromptBuilder は埋め込みテンプレートからシステム指示とユーザーメッセージを組み立てます。
type TextPromptBuilder struct {
	system string
	user   *template.Template
}

// NewTextPromptBuilder は埋め込みテンプレートで TextPromptBuilder を初期化します。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	return NewTextPromptBuilderFrom(SystemPrompt, UserPromptTemplate)
}

// NewTextPromptBuilderFrom は任意のテンプレート文字列から TextPromptBuilder を作るのだ。
func NewTextPromptBuilderFrom(system, userTemplate string) (*TextPromptBuilder, error) {
	system = strings.TrimRight(system, "\r\n")
	if system == "" {
		return nil, fmt.Errorf("システムプロンプト (go:embed) の読み込みに失敗しました: 内容が空です")
	}
	if userTemplate == "" {
		return nil, fmt.Errorf("ユーザープロンプト (go:embed) の読み込みに失敗しました: 内容が空です")
	}

	tmpl, err := template.New("user").Option("missingkey=error").Parse(userTemplate)
	if err != nil {
		return nil, fmt.Errorf("ユーザープロンプトの解析に失敗: %w", err)
	}

	return &TextPromptBuilder{
		system: system,
		user:   tmpl,
	}, nil
}

// Build は Request を正規化し、テンプレートを実行してメッセージを返します。
// 空のアイデアはここで弾かれるので、ネットワーク呼び出しには到達しないのだ。
func (b *TextPromptBuilder) Build(req domain.Request) (domain.Request, Messages, error) {
	normalized, err := req.Normalize()
	if err != nil {
		return domain.Request{}, Messages{}, err
	}

	var sb strings.Builder
	data := TemplateData{Idea: normalized.Idea, Style: normalized.Style}
	if err := b.user.Execute(&sb, data); err != nil {
		return domain.Request{}, Messages{}, fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}

	return normalized, Messages{System: b.system, User: sb.String()}, nil
}
