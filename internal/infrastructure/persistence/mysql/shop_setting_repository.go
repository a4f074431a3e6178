package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/shop"
)

// ShopSettingRepository MySQL実装のshop.SettingRepository
type ShopSettingRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewShopSettingRepository 新しいShopSettingRepositoryを作成
func NewShopSettingRepository(db *DB) *ShopSettingRepository {
	return &ShopSettingRepository{
		db:     db,
		tracer: otel.Tracer("shop-setting-repository"),
	}
}

// Get 設定値を取得。存在しない場合はErrSettingNotFoundを返す
func (r *ShopSettingRepository) Get(ctx context.Context, name string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "ShopSettingRepository.Get")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.setting_name", name),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "shop_settings"),
	)

	query := `
		SELECT value
		FROM shop_settings
		WHERE name = ?
	`

	var value string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "setting not found")
		return "", shop.ErrSettingNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return "", fmt.Errorf("failed to get shop setting: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "setting found")
	return value, nil
}

// Set 設定値を挿入または更新する
func (r *ShopSettingRepository) Set(ctx context.Context, name, value string) error {
	ctx, span := r.tracer.Start(ctx, "ShopSettingRepository.Set")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.setting_name", name),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.table", "shop_settings"),
	)

	query := `
		INSERT INTO shop_settings (name, value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`

	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to set shop setting: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "setting saved")
	return nil
}
