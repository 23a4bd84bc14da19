package sqlite

import (
	"encoding/json"
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 string in UTC.
// Storing UTC keeps lexicographic ordering of the column equal to
// chronological ordering, which the range queries rely on.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil for NULL storage
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatTagsForDB encodes a tag list as a JSON array string
func FormatTagsForDB(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func durationToSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func secondsToDuration(s int64) time.Duration {
	return time.Duration(s) * time.Second
}

// ParseTagsFromDB decodes a JSON array string into a tag list
func ParseTagsFromDB(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
