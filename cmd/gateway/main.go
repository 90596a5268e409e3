// AIゲートウェイサービスのエントリポイント。
// ブラウザからの音声文字起こしと質問応答のリクエストを外部AI APIへ転送する。
// 外部APIの認証情報はこのプロセスだけが保持する。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/aigateway/internal/config"
	"github.com/nao1215/aigateway/internal/gateway"
	"github.com/nao1215/aigateway/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	l := logger.New(cfg.IsProduction(), logger.WithLogFile(cfg.LogFile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := gateway.NewServer(cfg, l)

	l.Info("Gatewayサービスを起動します", "port", cfg.Port, "allowed_origin", cfg.AllowedOrigin)
	if err := server.Run(ctx); err != nil {
		l.Error("Gatewayサービスが異常終了しました", "error", err)
		stop()
		os.Exit(1)
	}
	l.Info("Gatewayサービスを停止しました")
}
