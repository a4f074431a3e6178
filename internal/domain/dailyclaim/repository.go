package dailyclaim

import (
	"context"
	"database/sql"
)

// Repository デイリー受取記録リポジトリインターフェース
type Repository interface {
	// Insert 受取記録を挿入する
	// (user_id, claim_key) の一意制約に違反した場合はErrAlreadyClaimedを返す
	Insert(ctx context.Context, tx *sql.Tx, c *DailyClaim) error

	// Exists 指定した受取キーの記録が存在するかを返す
	Exists(ctx context.Context, userID string, claimKey string) (bool, error)
}
