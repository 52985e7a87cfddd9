package proposal

import (
	"math"
	"time"

	"github.com/talentpath/talentpath/src/api/types"
)

// IsOverdue reports whether a course's deadline has passed while the course
// is still open.
func IsOverdue(pc types.ProposalCourse, now time.Time) bool {
	return pc.Deadline != nil && !pc.IsCompleted && pc.Deadline.Before(now)
}

// DaysRemaining returns the whole days until the deadline, negative once
// overdue, or nil when the course has no deadline or is already completed.
// Floored, not truncated: a deadline any amount in the past must read
// negative, matching IsOverdue.
func DaysRemaining(pc types.ProposalCourse, now time.Time) *int {
	if pc.Deadline == nil || pc.IsCompleted {
		return nil
	}
	days := int(math.Floor(pc.Deadline.Sub(now).Hours() / 24))
	return &days
}

// ProgressRatio returns completed/total for a proposal's courses, 0.0 when
// the path is empty.
func ProgressRatio(courses []types.ProposalCourse) float64 {
	if len(courses) == 0 {
		return 0.0
	}
	completed := 0
	for _, pc := range courses {
		if pc.IsCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(courses))
}
