package gateway

import (
	"encoding/json"
	"errors"

	"github.com/nao1215/aigateway/pkg/httpclient"
)

// クライアントに返すエラーメッセージ。
const (
	msgNoAudio          = "No audio file provided."
	msgNoQuestion       = "No question provided."
	msgTranscribeFailed = "Failed to transcribe audio."
	msgAnswerFailed     = "Failed to get answer from AI."
)

// questionRequest は POST /api/openai のリクエストボディ。
type questionRequest struct {
	// Question はユーザーの質問文。空文字列やnullは受け付けない。
	Question string `json:"question" binding:"required"`
}

// transcriptionResponse は POST /api/stt の成功レスポンス。
type transcriptionResponse struct {
	// Transcription は外部APIが返した文字起こし結果。
	Transcription string `json:"transcription"`
}

// answerResponse は POST /api/openai の成功レスポンス。
type answerResponse struct {
	// Answer は外部APIが返した最初の選択肢の内容。
	Answer string `json:"answer"`
}

// errorResponse は全エンドポイント共通のエラーレスポンス。
type errorResponse struct {
	// Error は固定のエラーメッセージ。
	Error string `json:"error"`
	// Details は外部APIのエラーボディ、またはローカルのエラーメッセージ。
	// 入力エラーの場合は含めない。
	Details any `json:"details,omitempty"`
}

// errorDetails は外部API呼び出しのエラーからクライアントに返すdetailsを組み立てる。
// 外部APIがボディ付きで2xx以外を返した場合はそのボディ（JSONならJSONのまま）を、
// それ以外はエラーメッセージを返す。
func errorDetails(err error) any {
	var se *httpclient.StatusError
	if errors.As(err, &se) && len(se.Body) > 0 {
		if json.Valid(se.Body) {
			return json.RawMessage(se.Body)
		}
		return string(se.Body)
	}
	return err.Error()
}
