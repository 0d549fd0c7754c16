package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-image-prompt/internal/builder"
	"github.com/shouni/go-image-prompt/pkg/domain"
	"github.com/shouni/go-image-prompt/pkg/runner"

	"github.com/spf13/afero"
)

// StdinPath は標準入力からアイデアを読むときの指定なのだ。
const StdinPath = "-"

// Streams はコマンドの入出力先をまとめたものです。
type Streams struct {
	In  io.Reader
	Out io.Writer // 生成結果 (プロンプト本文) の出力先なのだ
	Err io.Writer // 進捗や保存先の案内の出力先なのだ
}

// GenerateOptions は generate コマンドの入力なのだ。
type GenerateOptions struct {
	Idea  string
	Style string
	Save  bool
}

// BatchOptions は batch コマンドの入力なのだ。
type BatchOptions struct {
	Ideas     []string
	IdeasFile string
	Style     string
}

// ExecuteGenerate は1件のアイデアからプロンプトを生成して標準出力に書き出すのだ。
// Save が true なら prompt_<断片>.txt にも保存するのだよ。
func ExecuteGenerate(ctx context.Context, appCtx *builder.AppContext, s Streams, opts GenerateOptions) error {
	req := domain.Request{Idea: opts.Idea, Style: appCtx.Styles.Resolve(opts.Style)}

	slog.Info("単発生成を起動するのだ！", "model", appCtx.Config.Model, "style", req.Style)
	record, err := appCtx.SingleRunner.Run(ctx, req)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(s.Out, record.Prompt); err != nil {
		return fmt.Errorf("結果の出力に失敗しました: %w", err)
	}

	if !opts.Save {
		return nil
	}
	path, err := appCtx.SingleRunner.Save(record)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Err, "✅ Prompt tersimpan di file: %s\n", path)
	return nil
}

// ExecuteBatch は引数とファイルから集めたアイデアを順番に生成し、集約ファイルに書き出すのだ。
func ExecuteBatch(ctx context.Context, appCtx *builder.AppContext, fs afero.Fs, s Streams, opts BatchOptions) error {
	ideas, err := CollectIdeas(fs, s.In, opts)
	if err != nil {
		return err
	}

	style := appCtx.Styles.Resolve(opts.Style)
	slog.Info("バッチ生成を起動するのだ！", "model", appCtx.Config.Model, "count", len(ideas), "style", style)

	batch := appCtx.BatchRunner.WithProgress(func(current, total int, idea string) {
		fmt.Fprintf(s.Err, "  [%d/%d] Generating: %s...\n", current, total, idea)
	})
	records, path, err := batch.RunAndSave(ctx, ideas, style)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Err, "✅ Semua prompt tersimpan di: %s (%d ide)\n", path, len(records))
	return nil
}

// CollectIdeas は位置引数のアイデアの後ろに、ファイル (または標準入力) の各行を続けるのだ。
// 空行は無視し、1件も無ければ ErrNoIdeas を返します。
func CollectIdeas(fs afero.Fs, stdin io.Reader, opts BatchOptions) ([]string, error) {
	var ideas []string
	for _, idea := range opts.Ideas {
		if idea = strings.TrimSpace(idea); idea != "" {
			ideas = append(ideas, idea)
		}
	}

	if opts.IdeasFile != "" {
		text, err := readIdeasSource(fs, stdin, opts.IdeasFile)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, runner.ParseIdeas(text)...)
	}

	if len(ideas) == 0 {
		return nil, &domain.GenerationError{Kind: domain.KindInput, Err: domain.ErrNoIdeas}
	}
	return ideas, nil
}

func readIdeasSource(fs afero.Fs, stdin io.Reader, path string) (string, error) {
	if path == StdinPath {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗しました: %w", err)
		}
		return string(b), nil
	}
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("アイデアファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	return string(b), nil
}
