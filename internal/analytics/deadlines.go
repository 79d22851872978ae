package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/aegisops/aegis/internal/domain"
)

const (
	// ReviewInterval is the fixed window between framework audits.
	ReviewInterval = 90 * 24 * time.Hour

	// activityFallbackDays is used for pending activities without a
	// parseable due date.
	activityFallbackDays = 14

	deadlineListCap = 3
)

// UpcomingDeadlines merges framework review deadlines with pending
// activity due dates and returns the closest three, ascending by days
// remaining. Frameworks without a valid audit date are skipped; already
// overdue items clamp to 1 day so they sort first instead of vanishing.
func UpcomingDeadlines(frameworks []domain.ComplianceFrameworkRecord, activities []domain.ComplianceActivityRecord, now time.Time) []domain.Deadline {
	deadlines := make([]domain.Deadline, 0, len(frameworks)+len(activities))

	for _, f := range frameworks {
		if !f.AuditDateValid {
			continue
		}
		due := f.LastAuditAt.Add(ReviewInterval)
		deadlines = append(deadlines, domain.Deadline{
			Label:         f.Name + " review",
			DaysRemaining: daysUntil(due, now),
		})
	}

	for _, a := range activities {
		if a.Status == domain.ActivityCompleted {
			continue
		}
		days := activityFallbackDays
		if a.DateValid {
			days = daysUntil(a.Date, now)
		}
		deadlines = append(deadlines, domain.Deadline{
			Label:         a.Activity,
			DaysRemaining: days,
		})
	}

	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DaysRemaining < deadlines[j].DaysRemaining
	})
	if len(deadlines) > deadlineListCap {
		deadlines = deadlines[:deadlineListCap]
	}
	return deadlines
}

func daysUntil(due, now time.Time) int {
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// ComplianceCounts tallies frameworks per audit status.
func ComplianceCounts(frameworks []domain.ComplianceFrameworkRecord) domain.ComplianceSummary {
	s := domain.ComplianceSummary{Monitored: len(frameworks)}
	for _, f := range frameworks {
		switch f.Status {
		case domain.StatusCompliant:
			s.Compliant++
		case domain.StatusNonCompliant:
			s.NonCompliant++
		default:
			s.NeedsReview++
		}
	}
	return s
}
