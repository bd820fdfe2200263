// Package logger はzerologベースの構造化ロガーを提供します。
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New は実行環境に応じたロガーを生成します。
// 開発環境では人間向けのコンソール出力、それ以外ではJSON出力です。
func New(env string) zerolog.Logger {
	if env == "development" {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
