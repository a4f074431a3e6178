package wallet

import (
	"regexp"
	"time"
)

const (
	// MaxBalance 最大残高 (10兆)
	MaxBalance = 10_000_000_000_000
	// MaxAmount 1回の操作で扱える最大金額 (10兆)
	MaxAmount = 10_000_000_000_000
)

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// Wallet ウォレットエンティティ
// 残高は取引履歴の符号付き合計と常に一致し、マイナスにはならない
type Wallet struct {
	userID      string
	balance     int64 // 整数値（小数点なし）
	lastClaimAt *time.Time
}

// NewWallet 新しいWalletエンティティを作成
func NewWallet(userID string, balance int64, lastClaimAt *time.Time) (*Wallet, error) {
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if balance < 0 || balance > MaxBalance {
		return nil, ErrBalanceOutOfRange
	}
	return &Wallet{
		userID:      userID,
		balance:     balance,
		lastClaimAt: lastClaimAt,
	}, nil
}

// NewZeroWallet 残高ゼロのWalletエンティティを作成
func NewZeroWallet(userID string) (*Wallet, error) {
	return NewWallet(userID, 0, nil)
}

// UserID ユーザーIDを返す
func (w *Wallet) UserID() string {
	return w.userID
}

// Balance 残高を返す
func (w *Wallet) Balance() int64 {
	return w.balance
}

// LastClaimAt 最終デイリー受取日時を返す
func (w *Wallet) LastClaimAt() *time.Time {
	return w.lastClaimAt
}

// Credit 残高を加算する
func (w *Wallet) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	// オーバーフローチェック
	if w.balance > MaxBalance-amount {
		return ErrBalanceOutOfRange
	}
	w.balance += amount
	return nil
}

// Debit 残高を減算する（マイナス残高は許可しない）
func (w *Wallet) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	if w.balance < amount {
		return &InsufficientFundsError{
			Balance:  w.balance,
			Required: amount,
		}
	}
	w.balance -= amount
	return nil
}

// MarkClaimed デイリー受取日時を記録する
func (w *Wallet) MarkClaimed(at time.Time) {
	t := at
	w.lastClaimAt = &t
}

// MustNewWallet テスト用ヘルパー: NewWalletを呼び出し、エラーが発生した場合はpanicする
func MustNewWallet(userID string, balance int64, lastClaimAt *time.Time) *Wallet {
	w, err := NewWallet(userID, balance, lastClaimAt)
	if err != nil {
		panic(err)
	}
	return w
}
