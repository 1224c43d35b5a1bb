package verify

import "time"

func fixedTime() time.Time {
	return time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
}
