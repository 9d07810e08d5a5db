package services

import "time"

// Elapsed returns how long a session has been running. Clock skew between
// the source of record and this process can put start after now; that is
// clamped to zero instead of going negative.
func Elapsed(start, now time.Time) time.Duration {
	if now.Before(start) {
		return 0
	}
	return now.Sub(start)
}

// Accrued converts played time into a VND amount at the table's hourly
// rate, billed per second and rounded half-up to the whole dong.
// A zero rate is a free table and accrues nothing.
func Accrued(elapsed time.Duration, ratePerHour int64) int64 {
	if elapsed <= 0 || ratePerHour <= 0 {
		return 0
	}
	secs := int64(elapsed / time.Second)
	return (secs*ratePerHour + 1800) / 3600
}
