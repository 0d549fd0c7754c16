package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// parseLogLevel は debug|info|warn|error を slog.Level に変換するのだ。
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("不正なログレベルです: %q", s)
	}
	return level, nil
}

// newLogger は w に書き出す TextHandler のロガーを作り、セッション ID を付けるのだ。
func newLogger(w io.Writer, level, sessionID string) (*slog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With("session_id", sessionID), nil
}
