package pass

// TaskFrequency タスクの完了可能頻度
type TaskFrequency string

const (
	// FrequencyOnce 一度だけ完了できる
	FrequencyOnce TaskFrequency = "once"
	// FrequencyDaily UTC+8の1日につき一度完了できる
	FrequencyDaily TaskFrequency = "daily"
)

// EvidenceKind タスク完了の外部証跡の種類
type EvidenceKind string

const (
	// EvidenceDailyClaim 本日分のデイリー報酬受取記録が存在すること
	EvidenceDailyClaim EvidenceKind = "daily_claim"
	// EvidenceShopVisit 本日分のショップ訪問記録が存在すること
	EvidenceShopVisit EvidenceKind = "shop_visit"
	// EvidenceDiscordLink Discordアカウントが連携済みであること
	EvidenceDiscordLink EvidenceKind = "discord_link"
)

// Task パスタスクの定義
type Task struct {
	ID        string
	Name      string
	Frequency TaskFrequency
	XP        int64
	Evidence  EvidenceKind
}

// taskCatalog 静的なタスクカタログ
var taskCatalog = []Task{
	{
		ID:        "daily_claim",
		Name:      "デイリー報酬を受け取る",
		Frequency: FrequencyDaily,
		XP:        100,
		Evidence:  EvidenceDailyClaim,
	},
	{
		ID:        "shop_visit",
		Name:      "ショップを訪れる",
		Frequency: FrequencyDaily,
		XP:        50,
		Evidence:  EvidenceShopVisit,
	},
	{
		ID:        "link_discord",
		Name:      "Discordアカウントを連携する",
		Frequency: FrequencyOnce,
		XP:        300,
		Evidence:  EvidenceDiscordLink,
	},
}

// Tasks 全タスク定義を返す
func Tasks() []Task {
	tasks := make([]Task, len(taskCatalog))
	copy(tasks, taskCatalog)
	return tasks
}

// TaskByID IDでタスク定義を取得
func TaskByID(id string) (Task, error) {
	for _, t := range taskCatalog {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, ErrUnknownTask
}
