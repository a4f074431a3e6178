package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/pass"
)

// PassStateRepository MySQL実装のpass.StateRepository
type PassStateRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewPassStateRepository 新しいPassStateRepositoryを作成
func NewPassStateRepository(db *DB) *PassStateRepository {
	return &PassStateRepository{
		db:     db,
		tracer: otel.Tracer("pass-state-repository"),
	}
}

// Find ユーザーIDでパス状態を取得
func (r *PassStateRepository) Find(ctx context.Context, userID string) (*pass.State, error) {
	ctx, span := r.tracer.Start(ctx, "PassStateRepository.Find")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "pass_states"),
	)

	query := `
		SELECT user_id, xp, has_premium, claimed_free, claimed_premium
		FROM pass_states
		WHERE user_id = ?
	`

	s, err := scanPassState(r.db.QueryRowContext(ctx, query, userID))
	if err == pass.ErrStateNotFound {
		span.SetStatus(otelcodes.Ok, "pass state not found")
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "pass state found")
	return s, nil
}

// FindForUpdate 行ロックを取得してパス状態を取得
// 存在しない場合は初期状態の行を作成してからロックする（作成は冪等）
func (r *PassStateRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*pass.State, error) {
	ctx, span := r.tracer.Start(ctx, "PassStateRepository.FindForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "pass_states"),
	)

	insertQuery := `
		INSERT IGNORE INTO pass_states (user_id, xp, has_premium, claimed_free, claimed_premium)
		VALUES (?, 0, FALSE, '[]', '[]')
	`
	if _, err := tx.ExecContext(ctx, insertQuery, userID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to ensure pass state exists: %w", err)
	}

	selectQuery := `
		SELECT user_id, xp, has_premium, claimed_free, claimed_premium
		FROM pass_states
		WHERE user_id = ?
		FOR UPDATE
	`

	s, err := scanPassState(tx.QueryRowContext(ctx, selectQuery, userID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int64("db.xp", s.XP()))
	span.SetStatus(otelcodes.Ok, "pass state locked")
	return s, nil
}

// Save パス状態を保存
func (r *PassStateRepository) Save(ctx context.Context, tx *sql.Tx, s *pass.State) error {
	ctx, span := r.tracer.Start(ctx, "PassStateRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", s.UserID()),
		attribute.Int64("db.xp", s.XP()),
		attribute.Bool("db.has_premium", s.HasPremium()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "pass_states"),
	)

	claimedFree, err := json.Marshal(s.ClaimedFree())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to marshal claimed free levels: %w", err)
	}
	claimedPremium, err := json.Marshal(s.ClaimedPremium())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to marshal claimed premium levels: %w", err)
	}

	query := `
		UPDATE pass_states
		SET xp = ?, has_premium = ?, claimed_free = ?, claimed_premium = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`

	result, err := tx.ExecContext(ctx, query, s.XP(), s.HasPremium(), claimedFree, claimedPremium, s.UserID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save pass state: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "pass state saved")
	return nil
}

func scanPassState(row rowScanner) (*pass.State, error) {
	var (
		userID            string
		xp                int64
		hasPremium        bool
		claimedFreeRaw    []byte
		claimedPremiumRaw []byte
	)

	err := row.Scan(&userID, &xp, &hasPremium, &claimedFreeRaw, &claimedPremiumRaw)
	if err == sql.ErrNoRows {
		return nil, pass.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan pass state: %w", err)
	}

	var claimedFree, claimedPremium []int
	if err := json.Unmarshal(claimedFreeRaw, &claimedFree); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claimed free levels: %w", err)
	}
	if err := json.Unmarshal(claimedPremiumRaw, &claimedPremium); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claimed premium levels: %w", err)
	}

	s, err := pass.NewState(userID, xp, hasPremium, claimedFree, claimedPremium)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct pass state entity: %w", err)
	}
	return s, nil
}
