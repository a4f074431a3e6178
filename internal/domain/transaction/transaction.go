package transaction

import (
	"regexp"
	"time"
)

const (
	// MaxAmount 最大金額 (10兆)
	MaxAmount = 10_000_000_000_000
	// MaxBalance 最大残高 (10兆)
	MaxBalance = 10_000_000_000_000
	// MaxReasonLength 取引理由の最大長
	MaxReasonLength = 255
)

var (
	idRegex     = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
	userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
)

// Transaction 取引エンティティ
// ウォレットの残高変動1件を表す。追記専用で、作成後に変更されることはない
type Transaction struct {
	transactionID string
	userID        string
	txnType       Type
	amount        int64 // 整数値（小数点なし）、常に正
	reason        string
	balanceBefore int64
	balanceAfter  int64
	createdAt     time.Time
}

// NewTransaction 新しいTransactionエンティティを作成
func NewTransaction(
	transactionID string,
	userID string,
	txnType Type,
	amount int64,
	reason string,
	balanceBefore int64,
	balanceAfter int64,
	createdAt time.Time,
) (*Transaction, error) {
	if !idRegex.MatchString(transactionID) {
		return nil, ErrInvalidTransactionID
	}
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if !txnType.Valid() {
		return nil, ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount > MaxAmount {
		return nil, ErrAmountTooLarge
	}
	if len(reason) > MaxReasonLength {
		return nil, ErrInvalidReason
	}
	if balanceBefore < 0 || balanceBefore > MaxBalance {
		return nil, ErrBalanceOutOfRange
	}
	if balanceAfter < 0 || balanceAfter > MaxBalance {
		return nil, ErrBalanceOutOfRange
	}

	return &Transaction{
		transactionID: transactionID,
		userID:        userID,
		txnType:       txnType,
		amount:        amount,
		reason:        reason,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceAfter,
		createdAt:     createdAt,
	}, nil
}

// TransactionID 取引IDを返す
func (t *Transaction) TransactionID() string {
	return t.transactionID
}

// UserID ユーザーIDを返す
func (t *Transaction) UserID() string {
	return t.userID
}

// Type 取引タイプを返す
func (t *Transaction) Type() Type {
	return t.txnType
}

// Amount 金額を返す（常に正）
func (t *Transaction) Amount() int64 {
	return t.amount
}

// Reason 取引理由を返す
func (t *Transaction) Reason() string {
	return t.reason
}

// BalanceBefore 処理前の残高を返す
func (t *Transaction) BalanceBefore() int64 {
	return t.balanceBefore
}

// BalanceAfter 処理後の残高を返す
func (t *Transaction) BalanceAfter() int64 {
	return t.balanceAfter
}

// CreatedAt 作成日時を返す
func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// Signed 符号付き金額を返す（earn/claimは正、spendは負）
func (t *Transaction) Signed() int64 {
	if t.txnType.IsCredit() {
		return t.amount
	}
	return -t.amount
}

// MustNewTransaction テスト用ヘルパー: NewTransactionを呼び出し、エラーが発生した場合はpanicする
func MustNewTransaction(
	transactionID string,
	userID string,
	txnType Type,
	amount int64,
	reason string,
	balanceBefore int64,
	balanceAfter int64,
	createdAt time.Time,
) *Transaction {
	t, err := NewTransaction(transactionID, userID, txnType, amount, reason, balanceBefore, balanceAfter, createdAt)
	if err != nil {
		panic(err)
	}
	return t
}
