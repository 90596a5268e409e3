// Package upstream はゲートウェイが呼び出す外部AI API（OpenAI互換）のクライアントを提供する。
//
// リクエスト/レスポンスの型にはgo-openaiのワイヤ型を使い、通信はpkg/httpclientで行う。
// 1回の操作につき外部APIを1回だけ呼び出し、リトライは行わない。
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"time"

	"github.com/nao1215/aigateway/pkg/httpclient"
	openai "github.com/sashabaranov/go-openai"
)

const (
	transcriptionsPath  = "/audio/transcriptions"
	chatCompletionsPath = "/chat/completions"

	// audioFilename は外部APIに送る音声ファイル名。拡張子で形式が判定される。
	audioFilename = "audio.webm"
	// defaultAudioContentType はクライアントがContent-Typeを宣言しなかった場合の値。
	defaultAudioContentType = "application/octet-stream"

	chatTemperature float32 = 0.7
	chatMaxTokens           = 250
)

// ErrNoChoices はチャット補完のレスポンスに選択肢が1つも含まれていないことを表す。
var ErrNoChoices = errors.New("チャット補完のレスポンスにchoicesが含まれていません")

// Config は外部APIクライアントの設定。
type Config struct {
	// BaseURL は外部APIのベースURL（例: "https://api.openai.com/v1"）。
	BaseURL string
	// APIKey はBearerトークンとして付与するサーバー側の認証情報。
	APIKey string
	// TranscriptionModel は文字起こしに使用するモデルID。
	TranscriptionModel string
	// ChatModel は質問応答に使用するモデルID。
	ChatModel string
	// Timeout は1回の呼び出しのタイムアウト。0の場合はhttpclientのデフォルト。
	Timeout time.Duration
}

// Client は文字起こしとチャット補完の2つの外部API呼び出しを提供する。
type Client struct {
	http               *httpclient.Client
	transcriptionModel string
	chatModel          string
}

// New は新しい外部APIクライアントを生成する。
func New(cfg Config) *Client {
	opts := []httpclient.Option{httpclient.WithBearerToken(cfg.APIKey)}
	if cfg.Timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(cfg.Timeout))
	}
	return &Client{
		http:               httpclient.New(cfg.BaseURL, opts...),
		transcriptionModel: cfg.TranscriptionModel,
		chatModel:          cfg.ChatModel,
	}
}

// Transcribe は音声データを文字起こしAPIに送り、返されたテキストを返す。
// contentTypeはクライアントが宣言した音声のメディアタイプで、そのまま外部APIに転送する。
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = defaultAudioContentType
	}

	var resp openai.AudioResponse
	err := c.http.PostMultipart(ctx, transcriptionsPath, func(mw *multipart.Writer) error {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, audioFilename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("fileパートの作成に失敗: %w", err)
		}
		if _, err := io.Copy(part, audio); err != nil {
			return fmt.Errorf("音声データの書き込みに失敗: %w", err)
		}
		return mw.WriteField("model", c.transcriptionModel)
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("文字起こしAPIの呼び出しに失敗: %w", err)
	}
	return resp.Text, nil
}

// Ask は質問をユーザーメッセージとしてチャット補完APIに送り、最初の選択肢の内容を返す。
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	}

	var resp openai.ChatCompletionResponse
	if err := c.http.PostJSON(ctx, chatCompletionsPath, req, &resp); err != nil {
		return "", fmt.Errorf("チャット補完APIの呼び出しに失敗: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// UpstreamMessage はerrに含まれる外部APIのエラーメッセージ（error.message）を返す。
// 外部APIがエラーレスポンスを返していない場合は空文字列を返す。
func UpstreamMessage(err error) string {
	var se *httpclient.StatusError
	if !errors.As(err, &se) {
		return ""
	}
	var er openai.ErrorResponse
	if jsonErr := json.Unmarshal(se.Body, &er); jsonErr != nil || er.Error == nil {
		return ""
	}
	return er.Error.Message
}
