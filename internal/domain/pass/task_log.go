package pass

import (
	"time"

	"coin-server/internal/domain/dailyclaim"
)

// TaskLog タスク完了記録エンティティ
type TaskLog struct {
	userID          string
	taskID          string
	completedCount  int
	lastCompletedAt *time.Time
}

// NewTaskLog 新しいTaskLogエンティティを作成
func NewTaskLog(userID, taskID string, completedCount int, lastCompletedAt *time.Time) (*TaskLog, error) {
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if taskID == "" {
		return nil, ErrUnknownTask
	}
	if completedCount < 0 {
		return nil, ErrInvalidTaskLog
	}
	return &TaskLog{
		userID:          userID,
		taskID:          taskID,
		completedCount:  completedCount,
		lastCompletedAt: lastCompletedAt,
	}, nil
}

// NewEmptyTaskLog 完了回数ゼロの初期TaskLogエンティティを作成
func NewEmptyTaskLog(userID, taskID string) (*TaskLog, error) {
	return NewTaskLog(userID, taskID, 0, nil)
}

// UserID ユーザーIDを返す
func (l *TaskLog) UserID() string {
	return l.userID
}

// TaskID タスクIDを返す
func (l *TaskLog) TaskID() string {
	return l.taskID
}

// CompletedCount 完了回数を返す
func (l *TaskLog) CompletedCount() int {
	return l.completedCount
}

// LastCompletedAt 最終完了日時を返す
func (l *TaskLog) LastCompletedAt() *time.Time {
	return l.lastCompletedAt
}

// CanComplete 指定タスクを今完了できるかを検証する
func (l *TaskLog) CanComplete(task Task, now time.Time) error {
	switch task.Frequency {
	case FrequencyOnce:
		if l.completedCount > 0 {
			return ErrTaskAlreadyCompleted
		}
	case FrequencyDaily:
		if l.lastCompletedAt != nil && dailyclaim.SameDay(*l.lastCompletedAt, now) {
			return ErrTaskAlreadyCompleted
		}
	}
	return nil
}

// Complete 完了を記録する（回数を増やし、最終完了日時を更新）
func (l *TaskLog) Complete(at time.Time) {
	t := at
	l.completedCount++
	l.lastCompletedAt = &t
}

// MustNewTaskLog テスト用ヘルパー: NewTaskLogを呼び出し、エラーが発生した場合はpanicする
func MustNewTaskLog(userID, taskID string, completedCount int, lastCompletedAt *time.Time) *TaskLog {
	l, err := NewTaskLog(userID, taskID, completedCount, lastCompletedAt)
	if err != nil {
		panic(err)
	}
	return l
}
