package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-image-prompt/pkg/domain"
	"github.com/shouni/go-image-prompt/pkg/generator"
)

// ProgressFunc は各アイデアの処理開始時に呼ばれるのだ (current は 1 始まり)。
type ProgressFunc func(current, total int, idea string)

// BatchRunner は複数のアイデアを同じ画風で順番に処理する Runner です。
type BatchRunner struct {
	gen        generator.PromptGenerator
	saver      Saver
	onProgress ProgressFunc
}

// NewBatchRunner は依存関係を注入して初期化します。onProgress は nil でもよいのだ。
func NewBatchRunner(gen generator.PromptGenerator, saver Saver, onProgress ProgressFunc) *BatchRunner {
	return &BatchRunner{gen: gen, saver: saver, onProgress: onProgress}
}

// WithProgress は進捗コールバックを差し替えた BatchRunner を返すのだ。
func (br *BatchRunner) WithProgress(onProgress ProgressFunc) *BatchRunner {
	return &BatchRunner{gen: br.gen, saver: br.saver, onProgress: onProgress}
}

// Run は入力順に1件ずつ生成し、最初の失敗で残りを中断するのだ。
// 失敗した場合は途中までの結果も返さないのだよ。
func (br *BatchRunner) Run(ctx context.Context, ideas []string, style string) ([]domain.PromptRecord, error) {
	requests, err := buildRequests(ideas, style)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	slog.InfoContext(ctx, "バッチ生成を開始するのだ", "count", len(requests))

	records := make([]domain.PromptRecord, 0, len(requests))
	for i, req := range requests {
		if br.onProgress != nil {
			br.onProgress(i+1, len(requests), req.Idea)
		}
		text, err := br.gen.Generate(ctx, req)
		if err != nil {
			slog.ErrorContext(ctx, "バッチ生成を中断したのだ",
				"index", i+1,
				"idea", req.Idea,
				"kind", domain.KindOf(err).String(),
				"error", err)
			return nil, fmt.Errorf("アイデア %d (%s) の生成に失敗しました: %w", i+1, req.Idea, err)
		}
		records = append(records, domain.PromptRecord{Idea: req.Idea, Style: req.Style, Prompt: text})
	}

	slog.InfoContext(ctx, "バッチ生成が完了したのだ", "count", len(records), "elapsed", time.Since(start))
	return records, nil
}

// RunAndSave は Run の後、全件を1つの集約ファイルに書き出してそのパスを返します。
func (br *BatchRunner) RunAndSave(ctx context.Context, ideas []string, style string) ([]domain.PromptRecord, string, error) {
	records, err := br.Run(ctx, ideas, style)
	if err != nil {
		return nil, "", err
	}
	path, err := br.saver.SaveBatch(records)
	if err != nil {
		return nil, "", err
	}
	return records, path, nil
}

// buildRequests は通信の前に全アイデアを検証するのだ。
func buildRequests(ideas []string, style string) ([]domain.Request, error) {
	if len(ideas) == 0 {
		return nil, &domain.GenerationError{Kind: domain.KindInput, Err: domain.ErrNoIdeas}
	}
	requests := make([]domain.Request, 0, len(ideas))
	for i, idea := range ideas {
		req, err := domain.Request{Idea: idea, Style: style}.Normalize()
		if err != nil {
			return nil, fmt.Errorf("アイデア %d が空です: %w", i+1, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// ParseIdeas は1行1件のテキストからアイデアを取り出すのだ。空行は無視します。
func ParseIdeas(text string) []string {
	var ideas []string
	for _, line := range strings.Split(text, "\n") {
		if idea := strings.TrimSpace(line); idea != "" {
			ideas = append(ideas, idea)
		}
	}
	return ideas
}
