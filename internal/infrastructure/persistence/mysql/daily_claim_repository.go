package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/dailyclaim"
)

// DailyClaimRepository MySQL実装のdailyclaim.Repository
type DailyClaimRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewDailyClaimRepository 新しいDailyClaimRepositoryを作成
func NewDailyClaimRepository(db *DB) *DailyClaimRepository {
	return &DailyClaimRepository{
		db:     db,
		tracer: otel.Tracer("daily-claim-repository"),
	}
}

// Insert 受取記録を挿入する
// (user_id, claim_key) の一意制約に違反した場合はErrAlreadyClaimedを返す
func (r *DailyClaimRepository) Insert(ctx context.Context, tx *sql.Tx, c *dailyclaim.DailyClaim) error {
	ctx, span := r.tracer.Start(ctx, "DailyClaimRepository.Insert")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", c.UserID()),
		attribute.String("db.claim_key", c.ClaimKey()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "daily_claims"),
	)

	query := `
		INSERT INTO daily_claims (user_id, claim_key, amount, claimed_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query, c.UserID(), c.ClaimKey(), c.Amount(), c.ClaimedAt())
	if err != nil {
		if isDuplicateEntry(err) {
			span.SetStatus(otelcodes.Ok, "already claimed")
			return dailyclaim.ErrAlreadyClaimed
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to insert daily claim: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "daily claim inserted")
	return nil
}

// Exists 指定した受取キーの記録が存在するかを返す
func (r *DailyClaimRepository) Exists(ctx context.Context, userID string, claimKey string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "DailyClaimRepository.Exists")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.claim_key", claimKey),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "daily_claims"),
	)

	query := `
		SELECT 1
		FROM daily_claims
		WHERE user_id = ? AND claim_key = ?
	`

	var one int
	err := r.db.QueryRowContext(ctx, query, userID, claimKey).Scan(&one)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "claim not found")
		return false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to check daily claim: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "claim found")
	return true, nil
}
