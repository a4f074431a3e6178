package wallet

import "time"

// GetWalletRequest ウォレット取得リクエスト
type GetWalletRequest struct {
	UserID string
}

// GetWalletResponse ウォレット取得レスポンス
type GetWalletResponse struct {
	UserID      string
	Balance     int64
	LastClaimAt *time.Time
}

// GetHistoryRequest 取引履歴取得リクエスト
type GetHistoryRequest struct {
	UserID string
	Limit  int
}

// TransactionRecord 取引履歴の1件
type TransactionRecord struct {
	TransactionID string
	Type          string
	Amount        int64 // 符号付き（earn/claimは正、spendは負）
	Reason        string
	BalanceAfter  int64
	CreatedAt     time.Time
}

// GetHistoryResponse 取引履歴取得レスポンス
type GetHistoryResponse struct {
	UserID       string
	Transactions []TransactionRecord
}

// GetLeaderboardRequest リーダーボード取得リクエスト
type GetLeaderboardRequest struct {
	Limit int
}

// LeaderboardRank リーダーボードの1位分
type LeaderboardRank struct {
	Rank     int
	UserID   string
	Username string
	Balance  int64
}

// GetLeaderboardResponse リーダーボード取得レスポンス
type GetLeaderboardResponse struct {
	Ranks []LeaderboardRank
}

// AdminGrantRequest 管理者付与リクエスト
// Amountが正なら付与、負なら没収
type AdminGrantRequest struct {
	Email          string
	Amount         int64
	Reason         string
	IdempotencyKey string
}

// AdminGrantResponse 管理者付与レスポンス
type AdminGrantResponse struct {
	UserID        string
	TransactionID string
	Balance       int64
}
