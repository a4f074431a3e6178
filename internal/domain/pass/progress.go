package pass

const (
	// MaxLevel パスの最大レベル
	MaxLevel = 50
	// XPPerLevel 1レベルに必要なXP
	XPPerLevel = 500
)

// RequiredXP 指定レベルの報酬解放に必要な累計XPを返す
func RequiredXP(level int) int64 {
	return int64(level) * XPPerLevel
}

// Progress XPから導出されるレベル進行状況
type Progress struct {
	CompletedLevels int   // 完了したレベル数 [0, MaxLevel]
	CurrentLevel    int   // 現在のレベル [1, MaxLevel]
	LevelProgress   int64 // 現在レベル内の進行XP（最大レベル到達後は満タン）
}

// DeriveProgress 累計XPから進行状況を導出する
// addXp(x)→addXp(y) と addXp(x+y) は同じ結果になる（純粋関数）
func DeriveProgress(xp int64) Progress {
	if xp < 0 {
		xp = 0
	}

	completed := int(xp / XPPerLevel)
	if completed > MaxLevel {
		completed = MaxLevel
	}

	progress := xp - int64(completed)*XPPerLevel
	if completed == MaxLevel {
		// 最大レベル到達後はバーを満タンで固定
		progress = XPPerLevel
	}

	current := completed + 1
	if current > MaxLevel {
		current = MaxLevel
	}

	return Progress{
		CompletedLevels: completed,
		CurrentLevel:    current,
		LevelProgress:   progress,
	}
}
