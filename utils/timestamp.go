package utils

import "time"

// TimestampLayout is a fixed-width RFC3339 variant. Message timestamps are
// DynamoDB sort keys, so lexicographic order must match chronological order;
// time.RFC3339Nano drops trailing zeros and breaks that.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
