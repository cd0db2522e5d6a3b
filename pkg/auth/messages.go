package auth

// User-facing messages. The product surface ships a single locale, so these
// are fixed strings rather than translation keys.
const (
	msgUnsupportedMethod  = "サポートされていない認証方法です"
	msgMethodDisabled     = "この認証方法は無効になっています"
	msgMissingCredentials = "ユーザー名とパスワードを入力してください"
	msgLoginSuccess       = "ログインに成功しました"
	msgLoginFailedFmt     = "ログインに失敗しました (%d)"
	msgServerUnreachable  = "サーバーに接続できませんでした。ローカルサーバーが起動しているか確認してください。"
	msgOAuthSuccess       = "OAuth認証に成功しました"
	msgOAuthFailed        = "OAuth認証に失敗しました"
	msgOAuthError         = "OAuth認証エラーが発生しました"
)

// Localized display metadata for the built-in methods.
const (
	namePassword = "パスワード認証"
	descPassword = "ユーザー名とパスワードでログイン"
	nameOAuth    = "OAuth認証"
	descOAuth    = "Google、GitHub等のOAuthプロバイダーでログイン"
)
