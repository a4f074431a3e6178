package dailyclaim

import (
	"regexp"
	"time"
)

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// DailyClaim デイリー報酬の受取記録エンティティ
// (userID, claimKey) の一意制約が1日1回の唯一のガードになる
type DailyClaim struct {
	userID    string
	claimKey  string
	amount    int64
	claimedAt time.Time
}

// NewDailyClaim 新しいDailyClaimエンティティを作成
// claimKeyは受取日時からUTC+8のカレンダー日付として導出される
func NewDailyClaim(userID string, amount int64, claimedAt time.Time) (*DailyClaim, error) {
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &DailyClaim{
		userID:    userID,
		claimKey:  DayKey(claimedAt),
		amount:    amount,
		claimedAt: claimedAt,
	}, nil
}

// UserID ユーザーIDを返す
func (c *DailyClaim) UserID() string {
	return c.userID
}

// ClaimKey 受取キー（UTC+8のカレンダー日付文字列）を返す
func (c *DailyClaim) ClaimKey() string {
	return c.claimKey
}

// Amount 報酬額を返す
func (c *DailyClaim) Amount() int64 {
	return c.amount
}

// ClaimedAt 受取日時を返す
func (c *DailyClaim) ClaimedAt() time.Time {
	return c.claimedAt
}

// MustNewDailyClaim テスト用ヘルパー: NewDailyClaimを呼び出し、エラーが発生した場合はpanicする
func MustNewDailyClaim(userID string, amount int64, claimedAt time.Time) *DailyClaim {
	c, err := NewDailyClaim(userID, amount, claimedAt)
	if err != nil {
		panic(err)
	}
	return c
}
