package generator

import (
	"context"

	"github.com/shouni/go-image-prompt/pkg/domain"
)

// PromptGenerator は、アイデアと画風から画像生成用プロンプトのテキストを生成する契約です。
type PromptGenerator interface {
	// Generate はリモートの chat completion を1回だけ呼び出し、生成テキストを返すのだ。
	Generate(ctx context.Context, req domain.Request) (string, error)
}
