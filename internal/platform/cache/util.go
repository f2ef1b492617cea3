package cache

import (
	"time"
)

// TimeUntilNextRefresh は次の日次価格更新（UTCのhour時）までの期間を返します。
func TimeUntilNextRefresh(now time.Time, hour int) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)

	// 今日の更新時刻が既に過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
