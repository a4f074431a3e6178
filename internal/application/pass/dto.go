package pass

import "time"

// GetPassRequest パス状態取得リクエスト
type GetPassRequest struct {
	UserID string
}

// RewardView レベル報酬の表示用ビュー
type RewardView struct {
	Level          int
	RequiredXP     int64
	FreeCoins      int64
	PremiumCoins   int64
	IsMilestone    bool
	Unlocked       bool
	ClaimedFree    bool
	ClaimedPremium bool
}

// GetPassResponse パス状態取得レスポンス
type GetPassResponse struct {
	UserID          string
	XP              int64
	HasPremium      bool
	CompletedLevels int
	CurrentLevel    int
	LevelProgress   int64
	Rewards         []RewardView
}

// PurchasePremiumRequest プレミアム購入リクエスト
type PurchasePremiumRequest struct {
	UserID string
}

// PurchasePremiumResponse プレミアム購入レスポンス
type PurchasePremiumResponse struct {
	UserID        string
	Price         int64
	Balance       int64
	TransactionID string
}

// ClaimRewardRequest レベル報酬受取リクエスト
type ClaimRewardRequest struct {
	UserID string
	Level  int
	Tier   string
}

// ClaimRewardResponse レベル報酬受取レスポンス
type ClaimRewardResponse struct {
	UserID        string
	Level         int
	Tier          string
	Coins         int64
	Balance       int64
	TransactionID string
}

// ListTasksRequest タスク一覧取得リクエスト
type ListTasksRequest struct {
	UserID string
}

// TaskView タスクの表示用ビュー
type TaskView struct {
	ID              string
	Name            string
	Frequency       string
	XP              int64
	CompletedCount  int
	LastCompletedAt *time.Time
	CompletableNow  bool
}

// ListTasksResponse タスク一覧取得レスポンス
type ListTasksResponse struct {
	UserID string
	Tasks  []TaskView
}

// CompleteTaskRequest タスク完了リクエスト
type CompleteTaskRequest struct {
	UserID string
	TaskID string
}

// CompleteTaskResponse タスク完了レスポンス
type CompleteTaskResponse struct {
	UserID          string
	TaskID          string
	XPAwarded       int64
	XP              int64
	CompletedLevels int
	CurrentLevel    int
	LevelProgress   int64
}
