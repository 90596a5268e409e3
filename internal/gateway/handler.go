package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/aigateway/internal/upstream"
	"github.com/nao1215/aigateway/pkg/middleware"
)

// handleTranscribe はマルチパートのaudioフィールドを文字起こしAPIへ転送するハンドラを返す。
func (s *Server) handleTranscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: msgNoAudio})
			return
		}

		log := s.logger.With("request_id", middleware.GetRequestID(c))
		contentType := fh.Header.Get("Content-Type")

		f, err := fh.Open()
		if err != nil {
			log.Error("アップロードされた音声の読み込みに失敗", "error", err)
			c.JSON(http.StatusInternalServerError, errorResponse{Error: msgTranscribeFailed, Details: err.Error()})
			return
		}
		defer f.Close()

		log.Info("文字起こしAPIに音声を送信します",
			"filename", fh.Filename,
			"size", fh.Size,
			"content_type", contentType,
		)

		text, err := s.ai.Transcribe(c.Request.Context(), f, contentType)
		if err != nil {
			log.Error("文字起こしに失敗",
				"error", err,
				"upstream_message", upstream.UpstreamMessage(err),
			)
			c.JSON(http.StatusInternalServerError, errorResponse{Error: msgTranscribeFailed, Details: errorDetails(err)})
			return
		}

		log.Info("文字起こしが完了しました", "length", len(text))
		c.JSON(http.StatusOK, transcriptionResponse{Transcription: text})
	}
}

// handleAnswer はJSONのquestionをチャット補完APIへ転送するハンドラを返す。
func (s *Server) handleAnswer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req questionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: msgNoQuestion})
			return
		}

		log := s.logger.With("request_id", middleware.GetRequestID(c))
		log.Info("チャット補完APIに質問を送信します", "length", len(req.Question))

		answer, err := s.ai.Ask(c.Request.Context(), req.Question)
		if err != nil {
			log.Error("回答の取得に失敗",
				"error", err,
				"upstream_message", upstream.UpstreamMessage(err),
			)
			c.JSON(http.StatusInternalServerError, errorResponse{Error: msgAnswerFailed, Details: errorDetails(err)})
			return
		}

		log.Info("回答を取得しました", "length", len(answer))
		c.JSON(http.StatusOK, answerResponse{Answer: answer})
	}
}
