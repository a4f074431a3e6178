package pass

import (
	"context"
	"database/sql"
)

// StateRepository パス状態リポジトリインターフェース
type StateRepository interface {
	// Find ユーザーIDでパス状態を取得
	Find(ctx context.Context, userID string) (*State, error)

	// FindForUpdate 行ロックを取得してパス状態を取得
	// 存在しない場合は初期状態の行を作成してからロックする（作成は冪等）
	FindForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*State, error)

	// Save パス状態を保存（FindForUpdateで取得した行に対して使用する）
	Save(ctx context.Context, tx *sql.Tx, s *State) error
}

// TaskLogRepository タスク完了記録リポジトリインターフェース
type TaskLogRepository interface {
	// FindForUpdate 行ロックを取得してタスク記録を取得
	// 記録が存在しない場合は完了回数ゼロの記録を返す（行は作成しない）
	FindForUpdate(ctx context.Context, tx *sql.Tx, userID, taskID string) (*TaskLog, error)

	// Upsert タスク記録を挿入または更新する
	Upsert(ctx context.Context, tx *sql.Tx, l *TaskLog) error

	// ListByUserID ユーザーの全タスク記録を取得
	ListByUserID(ctx context.Context, userID string) ([]*TaskLog, error)
}
