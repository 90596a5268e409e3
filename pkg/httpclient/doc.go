// Package httpclient は外部APIとのHTTP通信を行うクライアントを提供する。
//
// Bearerトークンの付与、JSON/マルチパートボディの送信、2xx以外のレスポンスの
// StatusErrorへの変換など、ゲートウェイから外部APIを呼び出す際の通信パターンを統一する。
package httpclient
