package domain

import (
	"errors"
	"strings"
)

// DefaultStyle はスタイル未指定のときに使う画風なのだ。
const DefaultStyle = "realistic"

var (
	// ErrEmptyIdea は空白を除いたアイデアが空だった場合のエラーです。
	ErrEmptyIdea = errors.New("ide tidak boleh kosong")
	// ErrNoIdeas はバッチに1件もアイデアが無い場合のエラーです。
	ErrNoIdeas = errors.New("tidak ada ide yang dimasukkan")
)

// Request はユーザーが入力したアイデアと画風の組なのだ。
type Request struct {
	Idea  string `json:"idea"`
	Style string `json:"style"`
}

// Normalize はアイデアの前後の空白を取り除き、画風の既定値を補った Request を返します。
// アイデアが空の場合は KindInput の GenerationError を返すのだ。
func (r Request) Normalize() (Request, error) {
	idea := strings.TrimSpace(r.Idea)
	if idea == "" {
		return Request{}, &GenerationError{Kind: KindInput, Err: ErrEmptyIdea}
	}
	style := r.Style
	if strings.TrimSpace(style) == "" {
		style = DefaultStyle
	}
	return Request{Idea: idea, Style: style}, nil
}

// PromptRecord は生成済みプロンプト1件分の保存単位です。
type PromptRecord struct {
	Idea   string `json:"idea"`
	Style  string `json:"style"`
	Prompt string `json:"prompt"`
}
