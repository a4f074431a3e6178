package pass

import "errors"

var (
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrXPOutOfRange XPが範囲外
	ErrXPOutOfRange = errors.New("xp out of range")
	// ErrInvalidXPAmount XP加算量が無効
	ErrInvalidXPAmount = errors.New("invalid xp amount")
	// ErrInvalidTier ティアが無効
	ErrInvalidTier = errors.New("invalid tier")
	// ErrStateNotFound パス状態が見つからないエラー
	ErrStateNotFound = errors.New("pass state not found")
	// ErrRewardNotFound 報酬レベルが存在しないエラー
	ErrRewardNotFound = errors.New("reward not found")
	// ErrRewardLocked 必要XPに達していないエラー
	ErrRewardLocked = errors.New("reward locked")
	// ErrRewardAlreadyClaimed 報酬は受取済みエラー
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")
	// ErrPremiumRequired プレミアムパスが必要エラー
	ErrPremiumRequired = errors.New("premium pass required")
	// ErrAlreadyPremium プレミアムパスは購入済みエラー
	ErrAlreadyPremium = errors.New("premium pass already owned")
	// ErrUnknownTask タスクが存在しないエラー
	ErrUnknownTask = errors.New("unknown task")
	// ErrTaskAlreadyCompleted タスクは完了済みエラー
	ErrTaskAlreadyCompleted = errors.New("task already completed")
	// ErrTaskPreconditionNotMet タスクの完了条件を満たしていないエラー
	ErrTaskPreconditionNotMet = errors.New("task precondition not met")
	// ErrInvalidTaskLog タスク記録が無効
	ErrInvalidTaskLog = errors.New("invalid task log")
)
