package transaction

import (
	"context"
	"database/sql"
)

// Repository 取引リポジトリインターフェース
type Repository interface {
	// Insert 取引を追記する
	// transaction_idが衝突した場合はErrDuplicateTransactionを返す
	Insert(ctx context.Context, tx *sql.Tx, t *Transaction) error

	// FindByTransactionID 取引IDで取引を取得
	FindByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)

	// FindByUserID ユーザーの取引履歴を新しい順に取得
	FindByUserID(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
