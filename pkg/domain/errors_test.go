package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"
)

func TestRequest_Normalize(t *testing.T) {
	t.Run("空白だけのアイデアは拒否されるのだ", func(t *testing.T) {
		for _, idea := range []string{"", "   ", "\t\n "} {
			_, err := Request{Idea: idea}.Normalize()
			if !errors.Is(err, ErrEmptyIdea) {
				t.Errorf("idea=%q: ErrEmptyIdea を期待したのに %v なのだ", idea, err)
			}
			if KindOf(err) != KindInput {
				t.Errorf("idea=%q: KindInput を期待したのに %v なのだ", idea, KindOf(err))
			}
		}
	})

	t.Run("スタイル未指定なら realistic になるのだ", func(t *testing.T) {
		got, err := Request{Idea: "  kucing di taman  "}.Normalize()
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got.Idea != "kucing di taman" {
			t.Errorf("前後の空白が除去されていないのだ: %q", got.Idea)
		}
		if got.Style != DefaultStyle {
			t.Errorf("期待値 %q, 実際の値 %q", DefaultStyle, got.Style)
		}
	})

	t.Run("任意のスタイル文字列はそのまま通すのだ", func(t *testing.T) {
		got, err := Request{Idea: "cat", Style: "cyberpunk neon"}.Normalize()
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got.Style != "cyberpunk neon" {
			t.Errorf("スタイルが変化したのだ: %q", got.Style)
		}
	})
}

func TestKindOf(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{}
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindUnknown},
		{"status", &GenerationError{Kind: KindStatus, StatusCode: 500}, KindStatus},
		{"wrapped status", fmt.Errorf("outer: %w", &GenerationError{Kind: KindStatus}), KindStatus},
		{"empty choices", ErrEmptyChoices, KindMalformed},
		{"json syntax", syntaxErr, KindMalformed},
		{"eof", io.EOF, KindMalformed},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"url error", &url.Error{Op: "Post", URL: "http://x", Err: io.EOF}, KindNetwork},
		{"other", errors.New("boom"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("期待値 %v, 実際の値 %v", tt.want, got)
			}
		})
	}
}

func TestGenerationError_Error(t *testing.T) {
	err := &GenerationError{Kind: KindStatus, StatusCode: 401, Body: `{"error":"bad key"}`}
	msg := err.Error()
	if !strings.Contains(msg, "401") || !strings.Contains(msg, `{"error":"bad key"}`) {
		t.Errorf("ステータスコードと本文がそのまま含まれていないのだ: %s", msg)
	}
}
