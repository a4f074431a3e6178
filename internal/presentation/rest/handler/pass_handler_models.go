package handler

// RewardItem レベル報酬の1件
type RewardItem struct {
	Level          int   `json:"level"`
	RequiredXP     int64 `json:"required_xp"`
	FreeCoins      int64 `json:"free_coins"`
	PremiumCoins   int64 `json:"premium_coins"`
	IsMilestone    bool  `json:"is_milestone"`
	Unlocked       bool  `json:"unlocked"`
	ClaimedFree    bool  `json:"claimed_free"`
	ClaimedPremium bool  `json:"claimed_premium"`
}

// PassResponse パス状態レスポンス
type PassResponse struct {
	Success         bool         `json:"success"`
	UserID          string       `json:"user_id"`
	XP              int64        `json:"xp"`
	HasPremium      bool         `json:"has_premium"`
	CompletedLevels int          `json:"completed_levels"`
	CurrentLevel    int          `json:"current_level"`
	LevelProgress   int64        `json:"level_progress"`
	Rewards         []RewardItem `json:"rewards"`
}

// PurchasePremiumResponse プレミアム購入レスポンス
type PurchasePremiumResponse struct {
	Success       bool   `json:"success"`
	UserID        string `json:"user_id"`
	Price         int64  `json:"price"`
	Balance       int64  `json:"balance"`
	TransactionID string `json:"transaction_id"`
}

// ClaimRewardRequest レベル報酬受取リクエスト
type ClaimRewardRequest struct {
	RewardLevel int    `json:"reward_level"`
	Tier        string `json:"tier"`
}

// ClaimRewardResponse レベル報酬受取レスポンス
type ClaimRewardResponse struct {
	Success       bool   `json:"success"`
	UserID        string `json:"user_id"`
	Level         int    `json:"level"`
	Tier          string `json:"tier"`
	Coins         int64  `json:"coins"`
	Balance       int64  `json:"balance"`
	TransactionID string `json:"transaction_id"`
}

// TaskItem タスクの1件
type TaskItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Frequency       string  `json:"frequency"`
	XP              int64   `json:"xp"`
	CompletedCount  int     `json:"completed_count"`
	LastCompletedAt *string `json:"last_completed_at"`
	CompletableNow  bool    `json:"completable_now"`
}

// TasksResponse タスク一覧レスポンス
type TasksResponse struct {
	Success bool       `json:"success"`
	UserID  string     `json:"user_id"`
	Tasks   []TaskItem `json:"tasks"`
}

// CompleteTaskResponse タスク完了レスポンス
type CompleteTaskResponse struct {
	Success         bool    `json:"success"`
	UserID          string  `json:"user_id"`
	TaskID          string  `json:"task_id"`
	XPAwarded       int64   `json:"xp_awarded"`
	XP              int64   `json:"xp"`
	CompletedLevels int     `json:"completed_levels"`
	CurrentLevel    int     `json:"current_level"`
	LevelProgress   int64   `json:"level_progress"`
}
