package user

import "context"

// Repository ユーザーリポジトリインターフェース（参照のみ）
type Repository interface {
	// FindByUserID ユーザーIDでユーザーを取得
	FindByUserID(ctx context.Context, userID string) (*User, error)

	// FindByEmail メールアドレスでユーザーを取得
	FindByEmail(ctx context.Context, email string) (*User, error)
}
