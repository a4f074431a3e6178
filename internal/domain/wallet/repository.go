package wallet

import (
	"context"
	"database/sql"
)

// LeaderboardEntry 残高ランキングの1行（読み取り専用ビュー）
type LeaderboardEntry struct {
	UserID   string
	Username string
	Balance  int64
}

// Repository ウォレットリポジトリインターフェース
type Repository interface {
	// Find ユーザーIDでウォレットを取得
	Find(ctx context.Context, userID string) (*Wallet, error)

	// Create 残高ゼロのウォレットを作成（既に存在する場合は何もしない）
	Create(ctx context.Context, userID string) error

	// FindForUpdate 行ロックを取得してウォレットを取得
	// 存在しない場合は残高ゼロの行を作成してからロックする（作成は冪等）
	FindForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*Wallet, error)

	// Save ウォレットを保存（FindForUpdateで取得した行に対して使用する）
	Save(ctx context.Context, tx *sql.Tx, w *Wallet) error

	// ListTopByBalance 残高の多い順にユーザーを取得
	ListTopByBalance(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}
