package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/transaction"
)

// TransactionRepository MySQL実装のtransaction.Repository
type TransactionRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewTransactionRepository 新しいTransactionRepositoryを作成
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		tracer: otel.Tracer("transaction-repository"),
	}
}

// Insert 取引を追記する
// transaction_idが衝突した場合はErrDuplicateTransactionを返す
func (r *TransactionRepository) Insert(ctx context.Context, tx *sql.Tx, t *transaction.Transaction) error {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.Insert")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.transaction_id", t.TransactionID()),
		attribute.String("db.user_id", t.UserID()),
		attribute.String("db.transaction_type", t.Type().String()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "transactions"),
	)

	query := `
		INSERT INTO transactions (
			transaction_id, user_id, transaction_type, amount, reason,
			balance_before, balance_after, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		t.TransactionID(),
		t.UserID(),
		t.Type().String(),
		t.Amount(),
		t.Reason(),
		t.BalanceBefore(),
		t.BalanceAfter(),
		t.CreatedAt(),
	)
	if err != nil {
		if isDuplicateEntry(err) {
			span.SetStatus(otelcodes.Ok, "duplicate transaction")
			return transaction.ErrDuplicateTransaction
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "transaction inserted")
	return nil
}

// FindByTransactionID 取引IDで取引を取得
func (r *TransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.FindByTransactionID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.transaction_id", transactionID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "transactions"),
	)

	query := `
		SELECT transaction_id, user_id, transaction_type, amount, reason,
		       balance_before, balance_after, created_at
		FROM transactions
		WHERE transaction_id = ?
	`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, transactionID))
	if err == transaction.ErrTransactionNotFound {
		span.SetStatus(otelcodes.Ok, "transaction not found")
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "transaction found")
	return t, nil
}

// FindByUserID ユーザーの取引履歴を新しい順に取得
func (r *TransactionRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]*transaction.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "TransactionRepository.FindByUserID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.Int("db.limit", limit),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "transactions"),
	)

	query := `
		SELECT transaction_id, user_id, transaction_type, amount, reason,
		       balance_before, balance_after, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	span.SetAttributes(attribute.Int("db.result_count", len(transactions)))
	span.SetStatus(otelcodes.Ok, "transactions listed")
	return transactions, nil
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var (
		transactionID string
		userID        string
		txnTypeStr    string
		amount        int64
		reason        string
		balanceBefore int64
		balanceAfter  int64
		createdAt     time.Time
	)

	err := row.Scan(&transactionID, &userID, &txnTypeStr, &amount, &reason,
		&balanceBefore, &balanceAfter, &createdAt)
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txnType, err := transaction.NewType(txnTypeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction type: %w", err)
	}

	t, err := transaction.NewTransaction(transactionID, userID, txnType, amount, reason,
		balanceBefore, balanceAfter, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct transaction entity: %w", err)
	}
	return t, nil
}
