package handler

// WalletResponse ウォレットレスポンス
type WalletResponse struct {
	Success     bool    `json:"success"`
	UserID      string  `json:"user_id"`
	Balance     int64   `json:"balance"`
	LastClaimAt *string `json:"last_claim_at"`
}

// TransactionItem 取引履歴の1件
type TransactionItem struct {
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	Reason        string `json:"reason"`
	BalanceAfter  int64  `json:"balance_after"`
	CreatedAt     string `json:"created_at"`
}

// HistoryResponse 取引履歴レスポンス
type HistoryResponse struct {
	Success      bool              `json:"success"`
	UserID       string            `json:"user_id"`
	Transactions []TransactionItem `json:"transactions"`
}

// LeaderboardItem リーダーボードの1位分
type LeaderboardItem struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

// LeaderboardResponse リーダーボードレスポンス
type LeaderboardResponse struct {
	Success bool              `json:"success"`
	Ranks   []LeaderboardItem `json:"ranks"`
}

// AdminGrantRequest 管理者付与リクエスト
type AdminGrantRequest struct {
	Email          string `json:"email"`
	Amount         int64  `json:"amount"`
	Reason         string `json:"reason"`
	IdempotencyKey string `json:"idempotency_key"`
}

// AdminGrantResponse 管理者付与レスポンス
type AdminGrantResponse struct {
	Success       bool   `json:"success"`
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	Balance       int64  `json:"balance"`
}

// ClaimResponse デイリー受取レスポンス
type ClaimResponse struct {
	Success       bool   `json:"success"`
	UserID        string `json:"user_id"`
	Amount        int64  `json:"amount"`
	Balance       int64  `json:"balance"`
	TransactionID string `json:"transaction_id"`
	ClaimedAt     string `json:"claimed_at"`
	NextClaimInMs int64  `json:"next_claim_in_ms"`
}
