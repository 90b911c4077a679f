package engine

import (
	"time"

	"github.com/kharel/fintrack-bff-go/internal/domain"
)

const dueSoonDays = 7

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EvaluateDeadline classifies a due date relative to now and computes the
// elapsed-time progress ratio for timeline displays. start is the date the
// obligation was created; when zero, the total duration is assumed to be
// one month ending at the deadline. Progress is clamped to [0,1] and an
// overdue deadline reports 1.
func EvaluateDeadline(deadline, now, start time.Time) domain.DeadlineStatus {
	d := dateOnly(deadline)
	n := dateOnly(now)
	days := int(d.Sub(n).Hours() / 24)

	st := domain.DeadlineStatus{DaysRemaining: days}
	switch {
	case days < 0:
		st.Urgency = domain.UrgencyOverdue
	case days <= dueSoonDays:
		st.Urgency = domain.UrgencyDueSoon
	default:
		st.Urgency = domain.UrgencyNormal
	}

	if start.IsZero() {
		start = d.AddDate(0, -1, 0)
	}
	total := d.Sub(dateOnly(start))
	if total <= 0 {
		st.Progress = 1
		return st
	}
	progress := float64(n.Sub(dateOnly(start))) / float64(total)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	st.Progress = sanitize(progress)
	return st
}
