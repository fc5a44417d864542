// 指示: miu200521358
// Package mlogging はzerologによるロガー生成と既定ロガー管理を提供する。
package mlogging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	// LogLevelDebug はデバッグ出力レベル。
	LogLevelDebug = "debug"
	// LogLevelInfo は通常出力レベル。
	LogLevelInfo = "info"
	// LogLevelWarn は警告出力レベル。
	LogLevelWarn = "warn"
	// LogLevelError はエラー出力レベル。
	LogLevelError = "error"
)

// defaultLogger は既定ロガーを保持する。
var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := zerolog.Nop()
	defaultLogger.Store(&logger)
}

// NewLogger は出力先とレベルからロガーを生成する。端末出力時はコンソール形式にする。
func NewLogger(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel はレベル名をzerologレベルへ変換する。不明な名前はinfo扱い。
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// DefaultLogger は既定ロガーを返す。
func DefaultLogger() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefaultLogger は既定ロガーを差し替え、以前のロガーを返す。
func SetDefaultLogger(logger zerolog.Logger) *zerolog.Logger {
	return defaultLogger.Swap(&logger)
}

// RestoreDefaultLogger は退避したロガーへ戻す。
func RestoreDefaultLogger(previous *zerolog.Logger) {
	if previous == nil {
		return
	}
	defaultLogger.Store(previous)
}
