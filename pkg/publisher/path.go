package publisher

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	singleFilePrefix = "prompt_"
	singleFileSuffix = ".txt"
	maxFragmentRunes = 30
)

// SanitizeIdea はアイデアからファイル名用の断片を作るのだ。
// 文字と数字 (Unicode の L と N) と空白以外を取り除き、空白を "_" に置き換え、30文字に切り詰めます。
func SanitizeIdea(idea string) string {
	var sb strings.Builder
	for _, r := range idea {
		switch {
		case r == ' ':
			sb.WriteRune('_')
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			sb.WriteRune(r)
		}
	}
	fragment := []rune(sb.String())
	if len(fragment) > maxFragmentRunes {
		fragment = fragment[:maxFragmentRunes]
	}
	return string(fragment)
}

// SingleFileName は単発モードの保存ファイル名 prompt_<断片>.txt を返します。
func SingleFileName(idea string) string {
	return singleFilePrefix + SanitizeIdea(idea) + singleFileSuffix
}

// ResolveOutputPath は、出力ディレクトリとファイル名から最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("ファイル名が空です")
	}
	if filepath.IsAbs(fileName) {
		return filepath.Clean(fileName), nil
	}
	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, fileName), nil
}
