// Package gateway はAIゲートウェイサービスの内部実装を提供する。
//
// ブラウザからの音声文字起こし（POST /api/stt）と質問応答（POST /api/openai）の
// リクエストを外部AI APIへ1回ずつ転送し、レスポンスを正規化したJSONで返す。
// 外部APIの認証情報はサーバー側だけが保持し、クライアントには渡さない。
// リクエスト間で共有する可変状態は持たない。
package gateway
