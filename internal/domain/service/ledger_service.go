package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coin-server/internal/domain/transaction"
	"coin-server/internal/domain/wallet"
)

// LedgerService 台帳ドメインサービス
// ウォレットの残高変動と取引履歴の追記を同一の原子的な単位で行う。
// 全ての操作は呼び出し側のトランザクション内で実行され、対象ユーザーの
// ウォレット行ロックをトランザクション終了まで保持する。同一ユーザーの
// 操作はコミット順に直列化され、異なるユーザー同士は並行に進む
type LedgerService struct {
	walletRepo wallet.Repository
	txnRepo    transaction.Repository
}

// NewLedgerService 新しいLedgerServiceを作成
func NewLedgerService(walletRepo wallet.Repository, txnRepo transaction.Repository) *LedgerService {
	return &LedgerService{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
	}
}

// Credit 残高を加算し、取引を1件追記する
func (s *LedgerService) Credit(ctx context.Context, tx *sql.Tx, userID string, amount int64, txnType transaction.Type, reason string) (*wallet.Wallet, *transaction.Transaction, error) {
	return s.CreditWithID(ctx, tx, NewTransactionID(), userID, amount, txnType, reason)
}

// CreditWithID 取引IDを指定して残高を加算する
// 取引IDは冪等キーとして機能する: 同じIDの取引が既に存在する場合、
// 一意制約によりErrDuplicateTransactionで失敗し、二重付与は起きない
func (s *LedgerService) CreditWithID(ctx context.Context, tx *sql.Tx, transactionID, userID string, amount int64, txnType transaction.Type, reason string) (*wallet.Wallet, *transaction.Transaction, error) {
	if !txnType.IsCredit() {
		return nil, nil, transaction.ErrInvalidTransactionType
	}

	w, err := s.walletRepo.FindForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	balanceBefore := w.Balance()
	if err := w.Credit(amount); err != nil {
		return nil, nil, err
	}
	if txnType == transaction.TypeClaim {
		w.MarkClaimed(time.Now().UTC())
	}

	if err := s.walletRepo.Save(ctx, tx, w); err != nil {
		return nil, nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	txn, err := transaction.NewTransaction(
		transactionID,
		userID,
		txnType,
		amount,
		reason,
		balanceBefore,
		w.Balance(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := s.txnRepo.Insert(ctx, tx, txn); err != nil {
		return nil, nil, err
	}

	return w, txn, nil
}

// Debit 残高を減算し、取引を1件追記する
// 行ロック下の一貫したスナップショットに対して残高を検査するため、
// 残高不足の場合は副作用なしでInsufficientFundsErrorを返す
func (s *LedgerService) Debit(ctx context.Context, tx *sql.Tx, userID string, amount int64, reason string) (*wallet.Wallet, *transaction.Transaction, error) {
	return s.DebitWithID(ctx, tx, NewTransactionID(), userID, amount, reason)
}

// DebitWithID 取引IDを指定して残高を減算する
func (s *LedgerService) DebitWithID(ctx context.Context, tx *sql.Tx, transactionID, userID string, amount int64, reason string) (*wallet.Wallet, *transaction.Transaction, error) {
	w, err := s.walletRepo.FindForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	balanceBefore := w.Balance()
	if err := w.Debit(amount); err != nil {
		return nil, nil, err
	}

	if err := s.walletRepo.Save(ctx, tx, w); err != nil {
		return nil, nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	txn, err := transaction.NewTransaction(
		transactionID,
		userID,
		transaction.TypeSpend,
		amount,
		reason,
		balanceBefore,
		w.Balance(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := s.txnRepo.Insert(ctx, tx, txn); err != nil {
		return nil, nil, err
	}

	return w, txn, nil
}

// NewTransactionID 新しい取引IDを生成する
func NewTransactionID() string {
	return "txn_" + uuid.NewString()
}
