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

	"coin-server/internal/domain/shop"
)

// OrderRepository MySQL実装のshop.OrderRepository
type OrderRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewOrderRepository 新しいOrderRepositoryを作成
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{
		db:     db,
		tracer: otel.Tracer("order-repository"),
	}
}

const orderColumns = `order_id, user_id, product_id, product_name, price, quantity,
		       discord_id, user_email, promotion_content, status, decision_note,
		       resolved_at, resolved_by, notified_at, dismissed_at, created_at`

// Insert 新しいオーダーを挿入する
func (r *OrderRepository) Insert(ctx context.Context, tx *sql.Tx, o *shop.Order) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Insert")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.order_id", o.OrderID()),
		attribute.String("db.user_id", o.UserID()),
		attribute.String("db.product_id", o.ProductID()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "shop_orders"),
	)

	query := `
		INSERT INTO shop_orders (
			order_id, user_id, product_id, product_name, price, quantity,
			discord_id, user_email, promotion_content, status, decision_note,
			resolved_at, resolved_by, notified_at, dismissed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		o.OrderID(),
		o.UserID(),
		o.ProductID(),
		o.ProductName(),
		o.Price(),
		o.Quantity(),
		o.DiscordID(),
		o.UserEmail(),
		o.PromotionContent(),
		o.Status().String(),
		o.DecisionNote(),
		o.ResolvedAt(),
		o.ResolvedBy(),
		o.NotifiedAt(),
		o.DismissedAt(),
		o.CreatedAt(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to insert order: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "order inserted")
	return nil
}

// FindForUpdate 行ロックを取得してオーダーを取得
func (r *OrderRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, orderID string) (*shop.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.FindForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.order_id", orderID),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "shop_orders"),
	)

	query := `
		SELECT ` + orderColumns + `
		FROM shop_orders
		WHERE order_id = ?
		FOR UPDATE
	`

	o, err := scanOrder(tx.QueryRowContext(ctx, query, orderID))
	if err == shop.ErrOrderNotFound {
		span.SetStatus(otelcodes.Ok, "order not found")
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "order locked")
	return o, nil
}

// Update オーダーを更新（FindForUpdate/ListUnreadForUpdateで取得した行に対して使用する）
func (r *OrderRepository) Update(ctx context.Context, tx *sql.Tx, o *shop.Order) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.order_id", o.OrderID()),
		attribute.String("db.status", o.Status().String()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "shop_orders"),
	)

	query := `
		UPDATE shop_orders
		SET status = ?, decision_note = ?, resolved_at = ?, resolved_by = ?,
		    notified_at = ?, dismissed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE order_id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		o.Status().String(),
		o.DecisionNote(),
		o.ResolvedAt(),
		o.ResolvedBy(),
		o.NotifiedAt(),
		o.DismissedAt(),
		o.OrderID(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to update order: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "order updated")
	return nil
}

// ListByStatus ステータスでオーダー一覧を新しい順に取得（空文字列は全件）
func (r *OrderRepository) ListByStatus(ctx context.Context, status shop.OrderStatus, limit int) ([]*shop.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.ListByStatus")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.status", status.String()),
		attribute.Int("db.limit", limit),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "shop_orders"),
	)

	var (
		query string
		args  []interface{}
	)
	if status == "" {
		query = `
			SELECT ` + orderColumns + `
			FROM shop_orders
			ORDER BY created_at DESC, order_id DESC
			LIMIT ?
		`
		args = []interface{}{limit}
	} else {
		query = `
			SELECT ` + orderColumns + `
			FROM shop_orders
			WHERE status = ?
			ORDER BY created_at DESC, order_id DESC
			LIMIT ?
		`
		args = []interface{}{status.String(), limit}
	}

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.result_count", len(orders)))
	span.SetStatus(otelcodes.Ok, "orders listed")
	return orders, nil
}

// ListUnreadForUpdate 未通知の終端オーダーを行ロック付きで取得
func (r *OrderRepository) ListUnreadForUpdate(ctx context.Context, tx *sql.Tx, userID string) ([]*shop.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.ListUnreadForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "shop_orders"),
	)

	query := `
		SELECT ` + orderColumns + `
		FROM shop_orders
		WHERE user_id = ? AND status <> ? AND notified_at IS NULL
		ORDER BY created_at DESC, order_id DESC
		FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, query, userID, shop.OrderStatusPending.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list unread orders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.result_count", len(orders)))
	span.SetStatus(otelcodes.Ok, "unread orders locked")
	return orders, nil
}

// ListActive 未既読の終端オーダーを新しい順に取得（副作用なし）
func (r *OrderRepository) ListActive(ctx context.Context, userID string) ([]*shop.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.ListActive")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "shop_orders"),
	)

	query := `
		SELECT ` + orderColumns + `
		FROM shop_orders
		WHERE user_id = ? AND status <> ? AND dismissed_at IS NULL
		ORDER BY created_at DESC, order_id DESC
	`

	orders, err := r.queryOrders(ctx, query, userID, shop.OrderStatusPending.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.result_count", len(orders)))
	span.SetStatus(otelcodes.Ok, "active orders listed")
	return orders, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*shop.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]*shop.Order, error) {
	var orders []*shop.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*shop.Order, error) {
	var (
		orderID          string
		userID           string
		productID        string
		productName      string
		price            int64
		quantity         int
		discordID        sql.NullString
		userEmail        string
		promotionContent sql.NullString
		statusStr        string
		decisionNote     sql.NullString
		resolvedAt       sql.NullTime
		resolvedBy       sql.NullString
		notifiedAt       sql.NullTime
		dismissedAt      sql.NullTime
		createdAt        time.Time
	)

	err := row.Scan(&orderID, &userID, &productID, &productName, &price, &quantity,
		&discordID, &userEmail, &promotionContent, &statusStr, &decisionNote,
		&resolvedAt, &resolvedBy, &notifiedAt, &dismissedAt, &createdAt)
	if err == sql.ErrNoRows {
		return nil, shop.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	status, err := shop.NewOrderStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order status: %w", err)
	}

	o, err := shop.ReconstructOrder(
		orderID,
		userID,
		productID,
		productName,
		price,
		quantity,
		nullableString(discordID),
		userEmail,
		nullableString(promotionContent),
		status,
		nullableString(decisionNote),
		nullableTime(resolvedAt),
		nullableString(resolvedBy),
		nullableTime(notifiedAt),
		nullableTime(dismissedAt),
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct order entity: %w", err)
	}
	return o, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
