package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/aigateway/internal/config"
	"github.com/nao1215/aigateway/internal/upstream"
	"github.com/nao1215/aigateway/pkg/middleware"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// AIClient はゲートウェイが呼び出す外部AI APIの操作。
// *upstream.Client が実装する。
type AIClient interface {
	// Transcribe は音声データを文字起こしし、テキストを返す。
	Transcribe(ctx context.Context, audio io.Reader, contentType string) (string, error)
	// Ask は質問に対する回答を返す。
	Ask(ctx context.Context, question string) (string, error)
}

// Server はAIゲートウェイサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// ai は外部AI APIのクライアント。
	ai AIClient
	// logger は構造化ロガー。
	logger *slog.Logger
}

// NewServer は設定から新しいゲートウェイサーバーを生成する。
// APIキーが未設定でも起動は継続し、エラーログのみ出力する。
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	if cfg.APIKey == "" {
		logger.Error("外部APIのキーが設定されていません。外部APIの呼び出しは認証エラーになります",
			"env", config.EnvAPIKey,
		)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ai := upstream.New(upstream.Config{
		BaseURL:            cfg.BaseURL,
		APIKey:             cfg.APIKey,
		TranscriptionModel: cfg.TranscriptionModel,
		ChatModel:          cfg.ChatModel,
		Timeout:            cfg.UpstreamTimeout,
	})
	return newServer(cfg.Port, cfg.AllowedOrigin, ai, logger)
}

// newServer はルーティングとミドルウェアを設定したサーバーを生成する。
func newServer(port, allowedOrigin string, ai AIClient, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS([]string{allowedOrigin}))

	s := &Server{
		router: router,
		port:   port,
		ai:     ai,
		logger: logger,
	}
	s.setupRoutes()

	return s
}

// Handler はサーバーのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまでリクエストを処理する。
// キャンセル後は処理中のリクエストの完了を待ってから戻る。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
	case <-ctx.Done():
		s.logger.Info("シャットダウンを開始します")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTPサーバーのシャットダウンに失敗: %w", err)
		}
		return nil
	}
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/stt", s.handleTranscribe())
		api.POST("/openai", s.handleAnswer())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
}
