package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidAmount 無効な金額エラー
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountTooLarge 金額が大きすぎる
	ErrAmountTooLarge = errors.New("amount too large")
	// ErrBalanceOutOfRange 残高が範囲外
	ErrBalanceOutOfRange = errors.New("balance out of range")
	// ErrWalletNotFound ウォレットが見つからないエラー
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrInsufficientBalance 残高不足エラー
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// InsufficientFundsError 残高不足エラー（残高スナップショット付き）
// クライアントが残高を再同期できるよう、現在の残高と必要額を保持する
type InsufficientFundsError struct {
	Balance  int64
	Required int64
}

// Error エラーメッセージを返す
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: balance=%d required=%d", e.Balance, e.Required)
}

// Unwrap センチネルエラーを返す
func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientBalance
}
