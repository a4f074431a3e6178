package dailyclaim

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAlreadyClaimed 本日分は受取済みエラー
	ErrAlreadyClaimed = errors.New("daily reward already claimed")
)

// AlreadyClaimedError 受取済みエラー（再同期情報付き）
// 次に受け取れるまでの残り時間と現在の残高を保持する
type AlreadyClaimedError struct {
	NextClaimIn time.Duration
	Balance     int64
}

// Error エラーメッセージを返す
func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("daily reward already claimed: next claim in %s", e.NextClaimIn)
}

// Unwrap センチネルエラーを返す
func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}
