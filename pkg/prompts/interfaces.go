package prompts

import "github.com/shouni/go-image-prompt/pkg/domain"

// PromptBuilder は、アイデアと画風からチャット用メッセージを構築する契約です。
type PromptBuilder interface {
	// Build は正規化済みの Request とシステム/ユーザーの2メッセージを返すのだ。
	Build(req domain.Request) (domain.Request, Messages, error)
}

// Message はチャット会話の1メッセージです。
type Message struct {
	Role    string
	Content string
}

// Messages は system と user の2メッセージで構成される会話なのだ。
type Messages struct {
	System string
	User   string
}

// Conversation は送信順 (system → user) のメッセージ列を返します。
func (m Messages) Conversation() []Message {
	return []Message{
		{Role: RoleSystem, Content: m.System},
		{Role: RoleUser, Content: m.User},
	}
}
