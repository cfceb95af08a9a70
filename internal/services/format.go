package services

import "time"

// timestampLayout renders "day, abbreviated month, 4-digit year, 24-hour
// HH:mm", e.g. "15 Mar 2024 10:30".
const timestampLayout = "02 Jan 2006 15:04"

// FormatTimestamp converts an epoch-millisecond value to its display string
// in the local time zone. There are no error conditions: negative or zero
// values format to the corresponding epoch date without special-casing.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format(timestampLayout)
}
