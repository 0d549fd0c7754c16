package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-image-prompt/pkg/domain"
	"github.com/shouni/go-image-prompt/pkg/generator"
)

// Saver は生成結果を永続化する契約なのだ。
type Saver interface {
	SaveSingle(record domain.PromptRecord) (string, error)
	SaveBatch(records []domain.PromptRecord) (string, error)
}

// SingleRunner は1件のアイデアからプロンプトを生成する Runner です。
type SingleRunner struct {
	gen   generator.PromptGenerator
	saver Saver
}

// NewSingleRunner は依存関係を注入して初期化します。
func NewSingleRunner(gen generator.PromptGenerator, saver Saver) *SingleRunner {
	return &SingleRunner{gen: gen, saver: saver}
}

// Run はアイデアを検証してから生成を1回実行し、結果のレコードを返すのだ。
// アイデアが空なら生成器は呼ばれないのだよ。
func (sr *SingleRunner) Run(ctx context.Context, req domain.Request) (domain.PromptRecord, error) {
	normalized, err := req.Normalize()
	if err != nil {
		return domain.PromptRecord{}, err
	}

	start := time.Now()
	slog.InfoContext(ctx, "プロンプト生成を開始するのだ", "idea", normalized.Idea, "style", normalized.Style)

	text, err := sr.gen.Generate(ctx, normalized)
	if err != nil {
		slog.ErrorContext(ctx, "プロンプト生成に失敗したのだ",
			"idea", normalized.Idea,
			"kind", domain.KindOf(err).String(),
			"error", err)
		return domain.PromptRecord{}, fmt.Errorf("プロンプト生成に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "プロンプト生成が完了したのだ", "idea", normalized.Idea, "elapsed", time.Since(start))
	return domain.PromptRecord{Idea: normalized.Idea, Style: normalized.Style, Prompt: text}, nil
}

// Save は結果を単発用ファイルに書き出します。
func (sr *SingleRunner) Save(record domain.PromptRecord) (string, error) {
	return sr.saver.SaveSingle(record)
}
