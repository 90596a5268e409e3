package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestRequestID はRequestIDミドルウェアを検証する。
func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("X-Request-IDが無い場合にUUIDが生成されること", func(t *testing.T) {
		t.Parallel()

		var captured string
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			captured = GetRequestID(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if _, err := uuid.Parse(captured); err != nil {
			t.Errorf("生成されたIDがUUIDではない: %q", captured)
		}
		if got := w.Header().Get(HeaderKeyRequestID); got != captured {
			t.Errorf("%s = %q, want %q", HeaderKeyRequestID, got, captured)
		}
	})

	t.Run("クライアントが送ったX-Request-IDが引き継がれること", func(t *testing.T) {
		t.Parallel()

		var captured string
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			captured = GetRequestID(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderKeyRequestID, "client-supplied-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if captured != "client-supplied-id" {
			t.Errorf("GetRequestID() = %q, want %q", captured, "client-supplied-id")
		}
		if got := w.Header().Get(HeaderKeyRequestID); got != "client-supplied-id" {
			t.Errorf("%s = %q, want %q", HeaderKeyRequestID, got, "client-supplied-id")
		}
	})

	t.Run("ミドルウェア未適用の場合に空文字列が返ること", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if got := GetRequestID(c); got != "" {
			t.Errorf("GetRequestID() = %q, want empty string", got)
		}
	})

	t.Run("文字列以外の値が設定されている場合に空文字列が返ること", func(t *testing.T) {
		t.Parallel()

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(contextKeyRequestID, 12345)
		if got := GetRequestID(c); got != "" {
			t.Errorf("GetRequestID() = %q, want empty string", got)
		}
	})
}

// TestRequestLogger はRequestLoggerミドルウェアを検証する。
func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("リクエストごとに構造化ログが1行出力されること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		router := gin.New()
		router.Use(RequestID(), RequestLogger(logger))
		router.POST("/api/stt", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
		})

		req := httptest.NewRequest(http.MethodPost, "/api/stt", nil)
		req.Header.Set(HeaderKeyRequestID, "req-log")
		router.ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("ログのパースに失敗: %v (%s)", err, buf.String())
		}
		if entry["level"] != "WARN" {
			t.Errorf("level = %v, want WARN", entry["level"])
		}
		if entry["method"] != http.MethodPost {
			t.Errorf("method = %v, want POST", entry["method"])
		}
		if entry["path"] != "/api/stt" {
			t.Errorf("path = %v, want /api/stt", entry["path"])
		}
		if entry["status"] != float64(http.StatusBadRequest) {
			t.Errorf("status = %v, want %d", entry["status"], http.StatusBadRequest)
		}
		if entry["request_id"] != "req-log" {
			t.Errorf("request_id = %v, want req-log", entry["request_id"])
		}
	})

	t.Run("5xxはERRORレベルで出力されること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		router := gin.New()
		router.Use(RequestLogger(logger))
		router.GET("/fail", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("ログのパースに失敗: %v", err)
		}
		if entry["level"] != "ERROR" {
			t.Errorf("level = %v, want ERROR", entry["level"])
		}
	})
}
