package bboxselect

import "time"

// timeSeed derives a seed from the current time, matching the
// original engine's fallback when no explicit seed is configured.
func timeSeed() int64 {
	now := time.Now()
	return now.Unix()*100 + int64(now.Nanosecond()/1e7)
}
