package dailyclaim

import "time"

// Location デイリー境界の基準となる固定UTC+8タイムゾーン
// tzdataのルールではなく固定オフセットを使う。DSTのない地域なので許容されるが、
// 一般的なタイムゾーン変換として使ってはならない
var Location = time.FixedZone("UTC+8", 8*60*60)

// dayKeyFormat 受取キーの日付フォーマット
const dayKeyFormat = "2006-01-02"

// DayKey UTC+8のカレンダー日付文字列を返す
// 壁時計の経過時間ではなくこのキーが冪等性の境界になる。再起動や
// クライアントの時計ずれに影響されない
func DayKey(t time.Time) string {
	return t.In(Location).Format(dayKeyFormat)
}

// SameDay 2つの時刻がUTC+8で同じカレンダー日かどうかを返す
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// UntilNextReset 次のUTC+8深夜0時までの残り時間を返す
// 保存済みの受取日時ではなく常に現在のサーバー時刻から計算する
func UntilNextReset(now time.Time) time.Duration {
	local := now.In(Location)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, Location)
	return next.Sub(now)
}
