package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-image-prompt/pkg/domain"
)

// Entry はメニューの1行 (番号キーと画風ラベル) なのだ。
type Entry struct {
	Key   string
	Label string
}

// defaultEntries は表示順を保った固定の画風一覧です。
var defaultEntries = []Entry{
	{Key: "1", Label: "realistic"},
	{Key: "2", Label: "anime"},
	{Key: "3", Label: "digital art"},
	{Key: "4", Label: "oil painting"},
	{Key: "5", Label: "watercolor"},
	{Key: "6", Label: "3D render"},
	{Key: "7", Label: "sketch"},
	{Key: "8", Label: "fantasy art"},
}

const separatorWidth = 30

// Menu は番号キーから画風ラベルを引き当てる静的なメニューなのだ。
type Menu struct {
	entries []Entry
	byKey   map[string]string
}

// NewMenu は既定の8種類の画風を持つ Menu を返します。
func NewMenu() *Menu {
	m := &Menu{
		entries: make([]Entry, len(defaultEntries)),
		byKey:   make(map[string]string, len(defaultEntries)),
	}
	copy(m.entries, defaultEntries)
	for _, e := range m.entries {
		m.byKey[e.Key] = e.Label
	}
	return m
}

// Entries は表示順のコピーを返すのだ。
func (m *Menu) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Lookup は番号キーに対応するラベルを返します。
func (m *Menu) Lookup(key string) (string, bool) {
	label, ok := m.byKey[key]
	return label, ok
}

// Resolve はユーザー入力を画風に変換します。
// 番号に一致すればそのラベル、空なら realistic、それ以外は入力をそのままカスタム画風として使うのだ。
func (m *Menu) Resolve(input string) string {
	input = strings.TrimSpace(input)
	if label, ok := m.byKey[input]; ok {
		return label
	}
	if input == "" {
		return domain.DefaultStyle
	}
	return input
}

// Render はメニューを w に書き出します。
func (m *Menu) Render(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("\n🎨 Pilih Gaya Gambar:\n")
	sb.WriteString(strings.Repeat("-", separatorWidth) + "\n")
	for _, e := range m.entries {
		sb.WriteString(fmt.Sprintf("  %s. %s\n", e.Key, e.Label))
	}
	sb.WriteString(strings.Repeat("-", separatorWidth) + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
