package cache

import (
	"time"
)

// 日次バッチが株価データを更新し終える時刻（日本時間）。
const updateHourJST = 8

// TimeUntilNextUpdate は次のデータ更新時刻（日本時間午前8時）までの期間を返します。
func TimeUntilNextUpdate() time.Duration {
	loc, _ := time.LoadLocation("Asia/Tokyo")
	now := time.Now().In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), updateHourJST, 0, 0, 0, loc)

	// 今日の更新時刻が既に過ぎている場合は翌日を使用
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
