package publisher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shouni/go-image-prompt/pkg/domain"

	"github.com/spf13/afero"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	BatchFile string
}

const (
	singleRuleWidth = 50
	batchRuleWidth  = 60
	filePerm        = 0o644
	dirPerm         = 0o755
)

// PromptPublisher は生成結果をテキストファイルとして永続化するのだ。
type PromptPublisher struct {
	fs   afero.Fs
	opts Options
}

// NewPromptPublisher は fs と Options で PromptPublisher を作ります。
func NewPromptPublisher(fs afero.Fs, opts Options) (*PromptPublisher, error) {
	if fs == nil {
		return nil, fmt.Errorf("fs は必須です")
	}
	if opts.BatchFile == "" {
		return nil, fmt.Errorf("バッチ出力ファイル名は必須です")
	}
	return &PromptPublisher{fs: fs, opts: opts}, nil
}

// SaveSingle は1件の結果を prompt_<断片>.txt に書き出し、そのパスを返すのだ。
// 同じ断片のファイルが既にあれば黙って上書きするのだよ。
func (p *PromptPublisher) SaveSingle(record domain.PromptRecord) (string, error) {
	path, err := ResolveOutputPath(p.opts.OutputDir, SingleFileName(record.Idea))
	if err != nil {
		return "", err
	}
	if err := p.write(path, RenderSingle(record)); err != nil {
		return "", fmt.Errorf("プロンプトファイルの書き込みに失敗しました: %w", err)
	}
	slog.Info("プロンプトを保存したのだ", "path", path)
	return path, nil
}

// SaveBatch は全件を番号付きセクションとして1つのファイルに書き出します。
func (p *PromptPublisher) SaveBatch(records []domain.PromptRecord) (string, error) {
	if len(records) == 0 {
		return "", domain.ErrNoIdeas
	}
	path, err := ResolveOutputPath(p.opts.OutputDir, p.opts.BatchFile)
	if err != nil {
		return "", err
	}
	if err := p.write(path, RenderBatch(records)); err != nil {
		return "", fmt.Errorf("バッチファイルの書き込みに失敗しました: %w", err)
	}
	slog.Info("バッチ結果を保存したのだ", "path", path, "count", len(records))
	return path, nil
}

func (p *PromptPublisher) write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := p.fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}
	return afero.WriteFile(p.fs, path, []byte(content), filePerm)
}

// RenderSingle は単発モードのファイル内容を組み立てます。
func RenderSingle(record domain.PromptRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("IDE AWAL: %s\n", record.Idea))
	sb.WriteString(fmt.Sprintf("GAYA: %s\n", record.Style))
	sb.WriteString(strings.Repeat("=", singleRuleWidth) + "\n\n")
	sb.WriteString(record.Prompt)
	return sb.String()
}

// RenderBatch はバッチモードのファイル内容を入力順の番号付きセクションで組み立てます。
func RenderBatch(records []domain.PromptRecord) string {
	rule := strings.Repeat("=", batchRuleWidth)
	var sb strings.Builder
	for i, r := range records {
		sb.WriteString("\n" + rule + "\n")
		sb.WriteString(fmt.Sprintf("#%d - IDE: %s\n", i+1, r.Idea))
		sb.WriteString(fmt.Sprintf("GAYA: %s\n", r.Style))
		sb.WriteString(rule + "\n")
		sb.WriteString(r.Prompt)
		sb.WriteString("\n")
	}
	return sb.String()
}
