// Package logging はプロセス全体のslogロガーを構築します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel はLOG_LEVELの値をslog.Levelに変換します。不明な値はInfoです。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New は本番ではJSON、それ以外ではテキスト形式のロガーを返します。
func New(w io.Writer, level, appEnv string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if appEnv == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup は標準エラー出力へのロガーをデフォルトに設定します。
func Setup(level, appEnv string) *slog.Logger {
	logger := New(os.Stderr, level, appEnv)
	slog.SetDefault(logger)
	return logger
}
