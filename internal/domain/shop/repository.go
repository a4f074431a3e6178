package shop

import (
	"context"
	"database/sql"
)

// FeaturedProductSetting 注目商品を保持する設定行の名前
// プロセス内のグローバル変数ではなく永続化された行を使う（複数インスタンスで一致させるため）
const FeaturedProductSetting = "featured_product"

// OrderRepository オーダーリポジトリインターフェース
type OrderRepository interface {
	// Insert 新しいオーダーを挿入する
	Insert(ctx context.Context, tx *sql.Tx, o *Order) error

	// FindForUpdate 行ロックを取得してオーダーを取得
	FindForUpdate(ctx context.Context, tx *sql.Tx, orderID string) (*Order, error)

	// Update オーダーを更新（FindForUpdate/ListUnreadForUpdateで取得した行に対して使用する）
	Update(ctx context.Context, tx *sql.Tx, o *Order) error

	// ListByStatus ステータスでオーダー一覧を新しい順に取得（空文字列は全件）
	ListByStatus(ctx context.Context, status OrderStatus, limit int) ([]*Order, error)

	// ListUnreadForUpdate 未通知の終端オーダーを行ロック付きで取得
	ListUnreadForUpdate(ctx context.Context, tx *sql.Tx, userID string) ([]*Order, error)

	// ListActive 未既読の終端オーダーを新しい順に取得（副作用なし）
	ListActive(ctx context.Context, userID string) ([]*Order, error)
}

// VisitRepository ショップ訪問記録リポジトリインターフェース
type VisitRepository interface {
	// Record 指定日の訪問を記録する（同日2回目以降は何もしない）
	Record(ctx context.Context, userID, visitKey string) error

	// Exists 指定日の訪問記録が存在するかを返す
	Exists(ctx context.Context, userID, visitKey string) (bool, error)
}

// SettingRepository ショップ設定リポジトリインターフェース
type SettingRepository interface {
	// Get 設定値を取得。存在しない場合はErrSettingNotFoundを返す
	Get(ctx context.Context, name string) (string, error)

	// Set 設定値を挿入または更新する
	Set(ctx context.Context, name, value string) error
}
