package stock

import (
	"time"
)

// ExpiryStatus classifies how close a lot is to its expiry date.
type ExpiryStatus string

const (
	ExpiryStatusExpired   ExpiryStatus = "EXPIRED"
	ExpiryStatusCritical  ExpiryStatus = "CRITICAL"
	ExpiryStatusWarning   ExpiryStatus = "WARNING"
	ExpiryStatusAttention ExpiryStatus = "ATTENTION"
	ExpiryStatusOk        ExpiryStatus = "OK"
)

// Thresholds in days shared by both bucketings.
const (
	criticalDays  = 7
	warningDays   = 30
	attentionDays = 60
)

// DaysBetween returns the number of whole calendar days from to minus
// from, ignoring the time-of-day component of both dates.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ClassifyNotification buckets a lot for the notifications feed:
// expired, critical (within 7 days), warning (8 to 30 days), otherwise ok.
func ClassifyNotification(expiry, ref time.Time) ExpiryStatus {
	days := DaysBetween(ref, expiry)
	switch {
	case days < 0:
		return ExpiryStatusExpired
	case days <= criticalDays:
		return ExpiryStatusCritical
	case days <= warningDays:
		return ExpiryStatusWarning
	default:
		return ExpiryStatusOk
	}
}

// ClassifyDashboard buckets a medication's nearest expiry for the stock
// dashboard, which uses a coarser scale with a softer 31-60 day bucket:
// expired, critical (within 30 days), attention (31 to 60 days), ok.
func ClassifyDashboard(expiry, ref time.Time) ExpiryStatus {
	days := DaysBetween(ref, expiry)
	switch {
	case days < 0:
		return ExpiryStatusExpired
	case days <= warningDays:
		return ExpiryStatusCritical
	case days <= attentionDays:
		return ExpiryStatusAttention
	default:
		return ExpiryStatusOk
	}
}
