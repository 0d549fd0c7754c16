package prompts

import (
	_ "embed"
)

// RoleSystem と RoleUser はチャットメッセージのロールなのだ。
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// TemplateData はユーザーメッセージのテンプレートに渡すデータ構造です。
type TemplateData struct {
	Idea  string
	Style string
}

var (
	//go:embed system.md
	SystemPrompt string
	//go:embed user.md
	UserPromptTemplate string
)
