// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SignupReq は /signup のリクエストボディです。
// メールアドレスは前後の空白を除去し小文字化してから保存されます。
// パスワードの長さは entity.MinPasswordLength 〜 entity.MaxPasswordLength バイトです。
type SignupReq struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginReq は /login のリクエストボディです。
// メールアドレスはサインアップ時と同じ正規化を経て照合されます。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}
