package pipeline

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shouni/go-image-prompt/examples"
	"github.com/shouni/go-image-prompt/internal/builder"
	"github.com/shouni/go-image-prompt/internal/config"
	"github.com/shouni/go-image-prompt/pkg/domain"
	"github.com/shouni/go-image-prompt/pkg/publisher"

	"github.com/spf13/afero"
)

type fakeGenerator struct {
	calls []domain.Request
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, req domain.Request) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return "prompt:" + req.Idea + ":" + req.Style, nil
}

func newAppContext(t *testing.T, gen *fakeGenerator, fs afero.Fs) *builder.AppContext {
	t.Helper()
	pub, err := publisher.NewPromptPublisher(fs, publisher.Options{OutputDir: "out", BatchFile: config.DefaultBatchFile})
	if err != nil {
		t.Fatalf("パブリッシャーの初期化に失敗したのだ: %v", err)
	}
	return builder.NewAppContext(config.Config{Model: config.DefaultModel}, nil, gen, pub)
}

func newStreams(in string) (Streams, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return Streams{In: strings.NewReader(in), Out: out, Err: errOut}, out, errOut
}

func TestExecuteGenerate(t *testing.T) {
	t.Run("結果を標準出力に書き、保存しないのだ", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		gen := &fakeGenerator{}
		s, out, _ := newStreams("")

		err := ExecuteGenerate(context.Background(), newAppContext(t, gen, fs), s, GenerateOptions{Idea: "cat", Style: "3"})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got := out.String(); got != "prompt:cat:digital art\n" {
			t.Errorf("出力が違うのだ: %q", got)
		}
		if exists, _ := afero.Exists(fs, "out/prompt_cat.txt"); exists {
			t.Error("--save なしで保存されてしまったのだ")
		}
	})

	t.Run("--save で出力ディレクトリに保存するのだ", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		s, _, errOut := newStreams("")

		err := ExecuteGenerate(context.Background(), newAppContext(t, &fakeGenerator{}, fs), s, GenerateOptions{Idea: "Kucing @ Taman!!", Save: true})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if exists, _ := afero.Exists(fs, "out/prompt_Kucing__Taman.txt"); !exists {
			t.Error("ファイルが保存されていないのだ")
		}
		if !strings.Contains(errOut.String(), "out/prompt_Kucing__Taman.txt") {
			t.Errorf("保存先の案内がないのだ: %q", errOut.String())
		}
	})

	t.Run("空のアイデアは入力エラーなのだ", func(t *testing.T) {
		gen := &fakeGenerator{}
		s, _, _ := newStreams("")
		err := ExecuteGenerate(context.Background(), newAppContext(t, gen, afero.NewMemMapFs()), s, GenerateOptions{Idea: " "})
		if domain.KindOf(err) != domain.KindInput {
			t.Errorf("KindInput を期待したのに %v なのだ", err)
		}
		if len(gen.calls) != 0 {
			t.Error("生成器が呼ばれてしまったのだ")
		}
	})
}

func TestExecuteBatch(t *testing.T) {
	t.Run("引数とファイルのアイデアを順に処理するのだ", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "ideas.txt", []byte("dog\n\n  bird  \n"), 0o644); err != nil {
			t.Fatal(err)
		}
		gen := &fakeGenerator{}
		s, _, errOut := newStreams("")

		err := ExecuteBatch(context.Background(), newAppContext(t, gen, fs), fs, s, BatchOptions{
			Ideas:     []string{"cat"},
			IdeasFile: "ideas.txt",
			Style:     "anime",
		})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		var ideas []string
		for _, c := range gen.calls {
			ideas = append(ideas, c.Idea)
			if c.Style != "anime" {
				t.Errorf("画風が違うのだ: %+v", c)
			}
		}
		if want := []string{"cat", "dog", "bird"}; !reflect.DeepEqual(ideas, want) {
			t.Errorf("期待値 %v, 実際の値 %v", want, ideas)
		}
		if !strings.Contains(errOut.String(), "[3/3] Generating: bird...") {
			t.Errorf("進捗が表示されていないのだ: %q", errOut.String())
		}

		b, err := afero.ReadFile(fs, "out/batch_prompts.txt")
		if err != nil {
			t.Fatalf("集約ファイルが無いのだ: %v", err)
		}
		if strings.Count(string(b), " - IDE: ") != 3 {
			t.Errorf("セクション数が違うのだ:\n%s", b)
		}
	})

	t.Run("アイデア一覧の例は空行を除いた3件なのだ", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "ideas.txt", []byte(examples.IdeasText), 0o644); err != nil {
			t.Fatal(err)
		}
		ideas, err := CollectIdeas(fs, nil, BatchOptions{IdeasFile: "ideas.txt"})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if len(ideas) != 3 || ideas[0] != "Kucing oranye tidur di bawah pohon sakura" {
			t.Errorf("アイデアの読み込みが違うのだ: %q", ideas)
		}
	})

	t.Run("- で標準入力から読むのだ", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		gen := &fakeGenerator{}
		s, _, _ := newStreams("a\nb\n")
		if err := ExecuteBatch(context.Background(), newAppContext(t, gen, fs), fs, s, BatchOptions{IdeasFile: StdinPath}); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if len(gen.calls) != 2 || gen.calls[0].Style != "realistic" {
			t.Errorf("標準入力のアイデアが処理されていないのだ: %+v", gen.calls)
		}
	})

	t.Run("アイデアが無ければ ErrNoIdeas なのだ", func(t *testing.T) {
		s, _, _ := newStreams("")
		fs := afero.NewMemMapFs()
		err := ExecuteBatch(context.Background(), newAppContext(t, &fakeGenerator{}, fs), fs, s, BatchOptions{Ideas: []string{" ", ""}})
		if !errors.Is(err, domain.ErrNoIdeas) {
			t.Errorf("ErrNoIdeas を期待したのに %v なのだ", err)
		}
	})

	t.Run("存在しないファイルはエラーなのだ", func(t *testing.T) {
		s, _, _ := newStreams("")
		fs := afero.NewMemMapFs()
		err := ExecuteBatch(context.Background(), newAppContext(t, &fakeGenerator{}, fs), fs, s, BatchOptions{IdeasFile: "missing.txt"})
		if err == nil || !strings.Contains(err.Error(), "missing.txt") {
			t.Errorf("ファイル名を含むエラーを期待したのに %v なのだ", err)
		}
	})

	t.Run("生成に失敗したら集約ファイルを書かないのだ", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		gen := &fakeGenerator{err: &domain.GenerationError{Kind: domain.KindStatus, StatusCode: 500, Body: "boom"}}
		s, _, _ := newStreams("")
		err := ExecuteBatch(context.Background(), newAppContext(t, gen, fs), fs, s, BatchOptions{Ideas: []string{"cat", "dog"}})
		if domain.KindOf(err) != domain.KindStatus {
			t.Errorf("KindStatus を期待したのに %v なのだ", err)
		}
		if exists, _ := afero.Exists(fs, "out/batch_prompts.txt"); exists {
			t.Error("失敗したのに集約ファイルが作られたのだ")
		}
	})
}
