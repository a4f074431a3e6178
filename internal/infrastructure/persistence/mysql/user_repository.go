package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/user"
)

// UserRepository MySQL実装のuser.Repository（参照のみ）
type UserRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewUserRepository 新しいUserRepositoryを作成
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{
		db:     db,
		tracer: otel.Tracer("user-repository"),
	}
}

// FindByUserID ユーザーIDでユーザーを取得
func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.FindByUserID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "users"),
	)

	query := `
		SELECT user_id, email, username, role, discord_id
		FROM users
		WHERE user_id = ?
	`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err == user.ErrUserNotFound {
		span.SetStatus(otelcodes.Ok, "user not found")
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "user found")
	return u, nil
}

// FindByEmail メールアドレスでユーザーを取得
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.FindByEmail")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "users"),
	)

	query := `
		SELECT user_id, email, username, role, discord_id
		FROM users
		WHERE email = ?
	`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == user.ErrUserNotFound {
		span.SetStatus(otelcodes.Ok, "user not found")
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "user found")
	return u, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		userID    string
		email     string
		username  string
		roleStr   string
		discordID sql.NullString
	)

	err := row.Scan(&userID, &email, &username, &roleStr, &discordID)
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u, err := user.NewUser(userID, email, username, user.Role(roleStr), nullableString(discordID))
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return u, nil
}
