package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-image-prompt/internal/builder"
	"github.com/shouni/go-image-prompt/pkg/domain"
	"github.com/shouni/go-image-prompt/pkg/runner"
	"github.com/shouni/go-image-prompt/pkg/style"
)

// errInputClosed は標準入力が尽きたことを表すのだ。
var errInputClosed = errors.New("input closed")

const (
	bannerWidth    = 60
	separatorWidth = 30
	finishWord     = "selesai"
)

// Menu は対話メニューのループを管理するのだ。
// 入力と出力を差し替えられるので、テストでは台本どおりの入力を流し込めるのだよ。
type Menu struct {
	in     *bufio.Reader
	out    io.Writer
	styles *style.Menu
	single *runner.SingleRunner
	batch  *runner.BatchRunner
}

// New は AppContext の部品を使って Menu を組み立てます。
func New(in io.Reader, out io.Writer, appCtx *builder.AppContext) *Menu {
	m := &Menu{
		in:     bufio.NewReader(in),
		out:    out,
		styles: appCtx.Styles,
		single: appCtx.SingleRunner,
	}
	m.batch = appCtx.BatchRunner.WithProgress(m.printProgress)
	return m
}

// Run は「3」が選ばれるか入力が尽きるまでメニューを繰り返すのだ。
// 生成の失敗は画面に表示してループを続けます。
func (m *Menu) Run(ctx context.Context) error {
	m.printBanner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMainMenu()

		choice, err := m.prompt("Pilihan kamu (1/2/3): ")
		if err != nil {
			return m.finish(err)
		}

		switch choice {
		case "1":
			err = m.runSingle(ctx)
		case "2":
			err = m.runBatch(ctx)
		case "3":
			m.printFarewell()
			return nil
		default:
			m.printf("❌ Pilihan tidak valid, coba lagi!\n")
			continue
		}

		if errors.Is(err, errInputClosed) {
			return m.finish(err)
		}
		if err != nil {
			slog.Warn("メニューの処理に失敗したのだ", "choice", choice, "kind", domain.KindOf(err).String(), "error", err)
			m.printError(err)
		}
	}
}

// runSingle は1件のアイデアから生成し、希望があればファイルに保存するのだ。
func (m *Menu) runSingle(ctx context.Context) error {
	idea, err := m.prompt("\n💭 Masukkan ide gambarmu: ")
	if err != nil {
		return err
	}
	if idea == "" {
		m.printf("❌ Ide tidak boleh kosong!\n")
		return nil
	}

	if err := m.styles.Render(m.out); err != nil {
		return err
	}
	choice, err := m.prompt("Pilih nomor gaya (atau ketik sendiri): ")
	if err != nil {
		return err
	}
	styleLabel := m.styles.Resolve(choice)

	m.printf("\n⏳ Sedang generate prompt untuk: '%s' dengan gaya '%s'...\n", idea, styleLabel)
	m.printf("   (Mohon tunggu beberapa detik...)\n\n")

	record, err := m.single.Run(ctx, domain.Request{Idea: idea, Style: styleLabel})
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", bannerWidth)
	m.printf("\n%s\n✨ HASIL PROMPT:\n%s\n%s\n%s\n", rule, rule, record.Prompt, rule)

	answer, err := m.prompt("\n💾 Simpan ke file? (y/n): ")
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		return nil
	}
	path, err := m.single.Save(record)
	if err != nil {
		return err
	}
	m.printf("\n✅ Prompt tersimpan di file: %s\n", path)
	return nil
}

// runBatch は「selesai」までアイデアを集め、同じ画風で順番に生成して1つのファイルにまとめるのだ。
func (m *Menu) runBatch(ctx context.Context) error {
	m.printf("\n📝 Mode Batch - Masukkan beberapa ide (ketik '%s' untuk berhenti):\n", finishWord)

	var ideas []string
	for {
		idea, err := m.prompt(fmt.Sprintf("  Ide %d: ", len(ideas)+1))
		if err != nil {
			return err
		}
		if strings.EqualFold(idea, finishWord) {
			break
		}
		if idea != "" {
			ideas = append(ideas, idea)
		}
	}
	if len(ideas) == 0 {
		m.printf("❌ Tidak ada ide yang dimasukkan!\n")
		return nil
	}

	if err := m.styles.Render(m.out); err != nil {
		return err
	}
	choice, err := m.prompt("Pilih nomor gaya untuk semua: ")
	if err != nil {
		return err
	}
	styleLabel := m.styles.Resolve(choice)

	m.printf("\n🔄 Memproses %d ide...\n", len(ideas))
	_, path, err := m.batch.RunAndSave(ctx, ideas, styleLabel)
	if err != nil {
		return err
	}
	m.printf("\n✅ Semua prompt tersimpan di: %s\n", path)
	return nil
}

// prompt は案内を表示して1行読み、前後の空白を除いて返します。
// 改行のない最終行は読めた分を返し、何も読めなければ errInputClosed なのだ。
func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("入力の読み込みに失敗しました: %w", err)
		}
		if line == "" {
			return "", errInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

// finish は入力終端を「3. Keluar」と同じ扱いにするのだ。
func (m *Menu) finish(err error) error {
	if errors.Is(err, errInputClosed) {
		m.printf("\n")
		m.printFarewell()
		return nil
	}
	return err
}

func (m *Menu) printProgress(current, total int, idea string) {
	m.printf("  [%d/%d] Generating: %s...\n", current, total, idea)
}

// printError は失敗の種類に応じた案内を表示します。
func (m *Menu) printError(err error) {
	var ge *domain.GenerationError
	if errors.As(err, &ge) && ge.Kind == domain.KindStatus {
		m.printf("❌ API Error %d: %s\n", ge.StatusCode, ge.Body)
		return
	}

	switch domain.KindOf(err) {
	case domain.KindInput:
		m.printf("❌ Input tidak valid: %v\n", err)
	case domain.KindCredential:
		m.printf("❌ API key tidak tersedia: %v\n", err)
	case domain.KindNetwork:
		m.printf("❌ Gagal terhubung ke server: %v\n", err)
	case domain.KindMalformed:
		m.printf("❌ Respons server tidak bisa dibaca: %v\n", err)
	default:
		m.printf("❌ Terjadi kesalahan: %v\n", err)
	}
}

func (m *Menu) printBanner() {
	rule := strings.Repeat("=", bannerWidth)
	m.printf("%s\n🎨 AI IMAGE PROMPT GENERATOR\n%s\n", rule, rule)
}

func (m *Menu) printMainMenu() {
	m.printf("\n📋 MENU UTAMA:\n")
	m.printf("  1. Generate satu prompt\n")
	m.printf("  2. Generate banyak prompt sekaligus (batch)\n")
	m.printf("  3. Keluar\n")
	m.printf("%s\n", strings.Repeat("-", separatorWidth))
}

func (m *Menu) printFarewell() {
	m.printf("\n👋 Terima kasih sudah menggunakan AI Image Prompt Generator!\n")
	m.printf("   Selamat berkreasi! 🎨\n\n")
}

// printf は画面出力の失敗を無視するのだ。端末が閉じていれば次の読み込みで終わるのだよ。
func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}
