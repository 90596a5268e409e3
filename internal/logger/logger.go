// Package logger はゲートウェイで使用するslogロガーを構築する。
//
// 開発環境ではtintによる色付きのテキスト出力、本番環境ではJSON出力を行う。
// ファイル出力を有効にした場合はlumberjackでローテーションする。
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// options はロガーの構築オプション。
type options struct {
	out     io.Writer
	logFile string
	level   slog.Level
}

// Option はロガーの構築オプションを設定する関数。
type Option func(*options)

// WithOutput はコンソール出力先を変更する。デフォルトはos.Stderr。
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLogFile はログをpathのファイルにも出力する。空文字列の場合は何もしない。
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithLevel は出力する最低ログレベルを設定する。
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// New はproductionの値に応じたハンドラを持つロガーを生成する。
func New(production bool, opts ...Option) *slog.Logger {
	o := &options{
		out:   os.Stderr,
		level: slog.LevelInfo,
	}
	if !production {
		o.level = slog.LevelDebug
	}
	for _, opt := range opts {
		opt(o)
	}

	w := o.out
	if o.logFile != "" {
		w = io.MultiWriter(o.out, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: o.level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      o.level,
		TimeFormat: time.DateTime,
		// ファイルにエスケープシーケンスを書き込まない
		NoColor: o.logFile != "",
	}))
}
