// Package config はゲートウェイの設定を環境変数から読み込む。
//
// 起動時に一度だけ読み込み、以降は読み取り専用の値としてサーバーに注入する。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
)

// 環境変数名。
const (
	EnvPort               = "PORT"
	EnvAPIKey             = "OPENAI_API_KEY"
	EnvFrontendURL        = "FRONTEND_URL"
	EnvBaseURL            = "OPENAI_BASE_URL"
	EnvTranscriptionModel = "OPENAI_TRANSCRIPTION_MODEL"
	EnvChatModel          = "OPENAI_CHAT_MODEL"
	EnvUpstreamTimeout    = "UPSTREAM_TIMEOUT"
	EnvAppEnv             = "APP_ENV"
	EnvLogFile            = "LOG_FILE"
)

// デフォルト値。
const (
	DefaultPort               = "5000"
	DefaultFrontendURL        = "http://localhost:3000"
	DefaultBaseURL            = "https://api.openai.com/v1"
	DefaultTranscriptionModel = openai.Whisper1
	DefaultChatModel          = openai.GPT3Dot5Turbo
	DefaultUpstreamTimeout    = 60 * time.Second
	DefaultAppEnv             = "development"
)

// Config はゲートウェイの設定値。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// APIKey は外部APIに付与するBearerトークン。
	APIKey string
	// AllowedOrigin はクロスオリジンアクセスを許可する唯一のオリジン。
	AllowedOrigin string
	// BaseURL は外部APIのベースURL。
	BaseURL string
	// TranscriptionModel は音声文字起こしに使用するモデルID。
	TranscriptionModel string
	// ChatModel は質問応答に使用するモデルID。
	ChatModel string
	// UpstreamTimeout は外部API呼び出し1回あたりのタイムアウト。
	UpstreamTimeout time.Duration
	// AppEnv は実行環境（development / production）。
	AppEnv string
	// LogFile が空でない場合、ログをこのファイルにも出力する。
	LogFile string
}

// IsProduction は本番環境で実行されているかを返す。
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load は.envファイル（存在する場合）と環境変数から設定を読み込む。
// envFilesを省略した場合はカレントディレクトリの .env を読む。
// 既に設定されている環境変数は.envの値で上書きしない。
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envファイルの読み込みに失敗: %w", err)
	}

	timeout := DefaultUpstreamTimeout
	if v := os.Getenv(EnvUpstreamTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%sの値が不正: %w", EnvUpstreamTimeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%sは正の値である必要があります: %s", EnvUpstreamTimeout, v)
		}
		timeout = d
	}

	return &Config{
		Port:               getEnvOr(EnvPort, DefaultPort),
		APIKey:             os.Getenv(EnvAPIKey),
		AllowedOrigin:      getEnvOr(EnvFrontendURL, DefaultFrontendURL),
		BaseURL:            getEnvOr(EnvBaseURL, DefaultBaseURL),
		TranscriptionModel: getEnvOr(EnvTranscriptionModel, DefaultTranscriptionModel),
		ChatModel:          getEnvOr(EnvChatModel, DefaultChatModel),
		UpstreamTimeout:    timeout,
		AppEnv:             getEnvOr(EnvAppEnv, DefaultAppEnv),
		LogFile:            os.Getenv(EnvLogFile),
	}, nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
