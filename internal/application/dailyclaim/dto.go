package dailyclaim

import "time"

// ClaimRequest デイリー受取リクエスト
type ClaimRequest struct {
	UserID string
}

// ClaimResponse デイリー受取レスポンス
type ClaimResponse struct {
	UserID        string
	Amount        int64
	Balance       int64
	TransactionID string
	ClaimedAt     time.Time
	NextClaimIn   time.Duration
}
