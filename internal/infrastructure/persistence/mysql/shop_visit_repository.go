package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ShopVisitRepository MySQL実装のshop.VisitRepository
type ShopVisitRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewShopVisitRepository 新しいShopVisitRepositoryを作成
func NewShopVisitRepository(db *DB) *ShopVisitRepository {
	return &ShopVisitRepository{
		db:     db,
		tracer: otel.Tracer("shop-visit-repository"),
	}
}

// Record 指定日の訪問を記録する（同日2回目以降は何もしない）
func (r *ShopVisitRepository) Record(ctx context.Context, userID, visitKey string) error {
	ctx, span := r.tracer.Start(ctx, "ShopVisitRepository.Record")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.visit_key", visitKey),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "shop_visits"),
	)

	query := `
		INSERT IGNORE INTO shop_visits (user_id, visit_key)
		VALUES (?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, visitKey); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to record shop visit: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "shop visit recorded")
	return nil
}

// Exists 指定日の訪問記録が存在するかを返す
func (r *ShopVisitRepository) Exists(ctx context.Context, userID, visitKey string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "ShopVisitRepository.Exists")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.visit_key", visitKey),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "shop_visits"),
	)

	query := `
		SELECT 1
		FROM shop_visits
		WHERE user_id = ? AND visit_key = ?
	`

	var one int
	err := r.db.QueryRowContext(ctx, query, userID, visitKey).Scan(&one)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "visit not found")
		return false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to check shop visit: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "visit found")
	return true, nil
}
