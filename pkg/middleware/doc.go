// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// CORS設定、パニックリカバリ、リクエストIDの付与、構造化リクエストログなど、
// ゲートウェイの全ルートで共通して使用するミドルウェアを含む。
package middleware
