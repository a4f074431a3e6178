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

	"coin-server/internal/domain/wallet"
)

// WalletRepository MySQL実装のwallet.Repository
type WalletRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewWalletRepository 新しいWalletRepositoryを作成
func NewWalletRepository(db *DB) *WalletRepository {
	return &WalletRepository{
		db:     db,
		tracer: otel.Tracer("wallet-repository"),
	}
}

// Find ユーザーIDでウォレットを取得
func (r *WalletRepository) Find(ctx context.Context, userID string) (*wallet.Wallet, error) {
	ctx, span := r.tracer.Start(ctx, "WalletRepository.Find")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "wallets"),
	)

	query := `
		SELECT user_id, balance, last_claim_at
		FROM wallets
		WHERE user_id = ?
	`

	w, err := scanWallet(r.db.QueryRowContext(ctx, query, userID))
	if err == wallet.ErrWalletNotFound {
		span.SetStatus(otelcodes.Ok, "wallet not found")
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "wallet found")
	return w, nil
}

// Create 残高ゼロのウォレットを作成（既に存在する場合は何もしない）
func (r *WalletRepository) Create(ctx context.Context, userID string) error {
	ctx, span := r.tracer.Start(ctx, "WalletRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "wallets"),
	)

	// INSERT IGNOREにより同時作成の競合があっても一方だけが行を作る（冪等）
	query := `
		INSERT IGNORE INTO wallets (user_id, balance)
		VALUES (?, 0)
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "wallet created")
	return nil
}

// FindForUpdate 行ロックを取得してウォレットを取得
// 存在しない場合は残高ゼロの行を作成してからロックする
func (r *WalletRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*wallet.Wallet, error) {
	ctx, span := r.tracer.Start(ctx, "WalletRepository.FindForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "wallets"),
	)

	insertQuery := `
		INSERT IGNORE INTO wallets (user_id, balance)
		VALUES (?, 0)
	`
	if _, err := tx.ExecContext(ctx, insertQuery, userID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to ensure wallet exists: %w", err)
	}

	// 行ロックはトランザクション終了まで保持される。同一ユーザーの操作は
	// ここで直列化され、異なるユーザーは並行に進む
	selectQuery := `
		SELECT user_id, balance, last_claim_at
		FROM wallets
		WHERE user_id = ?
		FOR UPDATE
	`

	w, err := scanWallet(tx.QueryRowContext(ctx, selectQuery, userID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int64("db.balance", w.Balance()))
	span.SetStatus(otelcodes.Ok, "wallet locked")
	return w, nil
}

// Save ウォレットを保存
func (r *WalletRepository) Save(ctx context.Context, tx *sql.Tx, w *wallet.Wallet) error {
	ctx, span := r.tracer.Start(ctx, "WalletRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", w.UserID()),
		attribute.Int64("db.balance", w.Balance()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "wallets"),
	)

	query := `
		UPDATE wallets
		SET balance = ?, last_claim_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`

	result, err := tx.ExecContext(ctx, query, w.Balance(), w.LastClaimAt(), w.UserID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save wallet: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "wallet saved")
	return nil
}

// ListTopByBalance 残高の多い順にユーザーを取得
func (r *WalletRepository) ListTopByBalance(ctx context.Context, limit int) ([]*wallet.LeaderboardEntry, error) {
	ctx, span := r.tracer.Start(ctx, "WalletRepository.ListTopByBalance")
	defer span.End()

	span.SetAttributes(
		attribute.Int("db.limit", limit),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "wallets"),
	)

	query := `
		SELECT w.user_id, COALESCE(u.username, ''), w.balance
		FROM wallets w
		LEFT JOIN users u ON u.user_id = w.user_id
		ORDER BY w.balance DESC, w.user_id ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var entries []*wallet.LeaderboardEntry
	for rows.Next() {
		entry := &wallet.LeaderboardEntry{}
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.Balance); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate leaderboard rows: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "leaderboard listed")
	return entries, nil
}

// rowScanner sql.Rowとsql.Rowsの共通インターフェース
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWallet(row rowScanner) (*wallet.Wallet, error) {
	var userID string
	var balance int64
	var lastClaimAt sql.NullTime

	err := row.Scan(&userID, &balance, &lastClaimAt)
	if err == sql.ErrNoRows {
		return nil, wallet.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan wallet: %w", err)
	}

	var claimAt *time.Time
	if lastClaimAt.Valid {
		t := lastClaimAt.Time
		claimAt = &t
	}

	w, err := wallet.NewWallet(userID, balance, claimAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct wallet entity: %w", err)
	}
	return w, nil
}
