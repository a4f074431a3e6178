package transaction

import "errors"

var (
	// ErrInvalidTransactionID 取引IDが無効
	ErrInvalidTransactionID = errors.New("invalid transaction id")
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidTransactionType 取引タイプが無効
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountTooLarge 金額が大きすぎる
	ErrAmountTooLarge = errors.New("amount too large")
	// ErrInvalidReason 取引理由が無効
	ErrInvalidReason = errors.New("invalid reason")
	// ErrBalanceOutOfRange 残高が範囲外
	ErrBalanceOutOfRange = errors.New("balance out of range")
	// ErrDuplicateTransaction 重複取引エラー（冪等キーの衝突）
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	// ErrTransactionNotFound 取引が見つからないエラー
	ErrTransactionNotFound = errors.New("transaction not found")
)
