package utils

import (
	"time"
)

// UnixTimeToTime converts contract timestamps (unix seconds) to time.Time.
func UnixTimeToTime(unixTime int64) time.Time {
	return time.Unix(unixTime, 0)
}

// UnixMillisToTime converts QR payload timestamps (unix milliseconds).
func UnixMillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
