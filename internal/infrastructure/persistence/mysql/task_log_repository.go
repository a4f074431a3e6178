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

	"coin-server/internal/domain/pass"
)

// TaskLogRepository MySQL実装のpass.TaskLogRepository
type TaskLogRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewTaskLogRepository 新しいTaskLogRepositoryを作成
func NewTaskLogRepository(db *DB) *TaskLogRepository {
	return &TaskLogRepository{
		db:     db,
		tracer: otel.Tracer("task-log-repository"),
	}
}

// FindForUpdate 行ロックを取得してタスク記録を取得
// 記録が存在しない場合は完了回数ゼロの記録を返す（行は作成しない）
func (r *TaskLogRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, userID, taskID string) (*pass.TaskLog, error) {
	ctx, span := r.tracer.Start(ctx, "TaskLogRepository.FindForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.task_id", taskID),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "pass_task_logs"),
	)

	query := `
		SELECT user_id, task_id, completed_count, last_completed_at
		FROM pass_task_logs
		WHERE user_id = ? AND task_id = ?
		FOR UPDATE
	`

	l, err := scanTaskLog(tx.QueryRowContext(ctx, query, userID, taskID))
	if err == sql.ErrNoRows {
		l, err := pass.NewEmptyTaskLog(userID, taskID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		span.SetStatus(otelcodes.Ok, "task log not found, empty log returned")
		return l, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "task log locked")
	return l, nil
}

// Upsert タスク記録を挿入または更新する
func (r *TaskLogRepository) Upsert(ctx context.Context, tx *sql.Tx, l *pass.TaskLog) error {
	ctx, span := r.tracer.Start(ctx, "TaskLogRepository.Upsert")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", l.UserID()),
		attribute.String("db.task_id", l.TaskID()),
		attribute.Int("db.completed_count", l.CompletedCount()),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.table", "pass_task_logs"),
	)

	query := `
		INSERT INTO pass_task_logs (user_id, task_id, completed_count, last_completed_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			completed_count = VALUES(completed_count),
			last_completed_at = VALUES(last_completed_at)
	`

	if _, err := tx.ExecContext(ctx, query, l.UserID(), l.TaskID(), l.CompletedCount(), l.LastCompletedAt()); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to upsert task log: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "task log upserted")
	return nil
}

// ListByUserID ユーザーの全タスク記録を取得
func (r *TaskLogRepository) ListByUserID(ctx context.Context, userID string) ([]*pass.TaskLog, error) {
	ctx, span := r.tracer.Start(ctx, "TaskLogRepository.ListByUserID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "pass_task_logs"),
	)

	query := `
		SELECT user_id, task_id, completed_count, last_completed_at
		FROM pass_task_logs
		WHERE user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list task logs: %w", err)
	}
	defer rows.Close()

	var logs []*pass.TaskLog
	for rows.Next() {
		l, err := scanTaskLog(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate task log rows: %w", err)
	}

	span.SetAttributes(attribute.Int("db.result_count", len(logs)))
	span.SetStatus(otelcodes.Ok, "task logs listed")
	return logs, nil
}

func scanTaskLog(row rowScanner) (*pass.TaskLog, error) {
	var (
		userID          string
		taskID          string
		completedCount  int
		lastCompletedAt sql.NullTime
	)

	err := row.Scan(&userID, &taskID, &completedCount, &lastCompletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task log: %w", err)
	}

	var completedAt *time.Time
	if lastCompletedAt.Valid {
		t := lastCompletedAt.Time
		completedAt = &t
	}

	l, err := pass.NewTaskLog(userID, taskID, completedCount, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct task log entity: %w", err)
	}
	return l, nil
}
