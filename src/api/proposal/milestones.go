package proposal

import (
	"sort"

	"github.com/talentpath/talentpath/src/api/types"
)

// Milestone types
const (
	MilestoneCourseStarted   = "course_started"
	MilestoneFirstCourse     = "first_course"
	MilestoneCourseCompleted = "course_completed"
	Milestone25Percent       = "25_percent"
	Milestone50Percent       = "50_percent"
	Milestone75Percent       = "75_percent"
	MilestoneAllComplete     = "all_complete"
	MilestoneStreak3         = "streak_3"
)

type milestoneSpec struct {
	Title       string
	Description string
	XP          int  // 0 means the XP comes from the triggering course's level
	Once        bool // once per proposal; recurring types are keyed by the event instead
}

// The milestone catalog. Dedup and XP lookup are driven off this table.
var catalog = map[string]milestoneSpec{
	MilestoneCourseStarted:   {Title: "Course started", Description: "Started a course in the learning path", XP: 10},
	MilestoneFirstCourse:     {Title: "First steps", Description: "Started the first course of the proposal", XP: 25, Once: true},
	MilestoneCourseCompleted: {Title: "Course completed", Description: "Finished a course in the learning path"},
	Milestone25Percent:       {Title: "25% complete", Description: "A quarter of the learning path is done", XP: 50, Once: true},
	Milestone50Percent:       {Title: "Halfway there", Description: "Half of the learning path is done", XP: 50, Once: true},
	Milestone75Percent:       {Title: "75% complete", Description: "Three quarters of the learning path is done", XP: 50, Once: true},
	MilestoneAllComplete:     {Title: "Path complete", Description: "Every course in the learning path is done", XP: 50, Once: true},
	MilestoneStreak3:         {Title: "On a streak", Description: "Three consecutive courses completed in order", XP: 100, Once: true},
}

var progressThresholds = []struct {
	Frac float64
	Type string
}{
	{0.25, Milestone25Percent},
	{0.50, Milestone50Percent},
	{0.75, Milestone75Percent},
	{1.00, MilestoneAllComplete},
}

// Award is one milestone earned by a single triggering event.
type Award struct {
	Type string
	XP   int
}

func specXP(typ string) int {
	return catalog[typ].XP
}

// XPForLevel returns the completion XP for a course level. Unknown levels
// fall back to the beginner reward.
func XPForLevel(level string) int {
	switch level {
	case types.LevelBeginner:
		return 100
	case types.LevelIntermediate:
		return 200
	case types.LevelAdvanced:
		return 300
	default:
		return 100
	}
}

// existingTypes builds the dedup set for once-per-proposal milestones.
func existingTypes(milestones []types.ProposalMilestone) map[string]bool {
	seen := make(map[string]bool, len(milestones))
	for _, m := range milestones {
		seen[m.Type] = true
	}
	return seen
}

// StartAwards returns the milestones earned by starting a course. The courses
// slice must already reflect the start (the started row has a non-nil
// StartedAt).
func StartAwards(courses []types.ProposalCourse, existing map[string]bool) []Award {
	awards := []Award{{Type: MilestoneCourseStarted, XP: specXP(MilestoneCourseStarted)}}

	started := 0
	for _, pc := range courses {
		if pc.StartedAt != nil {
			started++
		}
	}
	if started == 1 && !existing[MilestoneFirstCourse] {
		awards = append(awards, Award{Type: MilestoneFirstCourse, XP: specXP(MilestoneFirstCourse)})
	}
	return awards
}

// CompletionAwards returns the milestones earned by completing a course of
// the given level. The courses slice must already reflect the completion.
// Multiple thresholds may fire in one event when earlier ones were missed.
func CompletionAwards(courses []types.ProposalCourse, level string, existing map[string]bool) []Award {
	awards := []Award{{Type: MilestoneCourseCompleted, XP: XPForLevel(level)}}

	total := len(courses)
	completed := 0
	for _, pc := range courses {
		if pc.IsCompleted {
			completed++
		}
	}
	if total > 0 {
		ratio := float64(completed) / float64(total)
		for _, t := range progressThresholds {
			if ratio >= t.Frac && !existing[t.Type] {
				awards = append(awards, Award{Type: t.Type, XP: specXP(t.Type)})
				existing[t.Type] = true
			}
		}
	}

	if !existing[MilestoneStreak3] && hasCompletedRun(courses, 3) {
		awards = append(awards, Award{Type: MilestoneStreak3, XP: specXP(MilestoneStreak3)})
		existing[MilestoneStreak3] = true
	}
	return awards
}

// hasCompletedRun reports whether any n courses consecutive by position are
// all completed.
func hasCompletedRun(courses []types.ProposalCourse, n int) bool {
	ordered := make([]types.ProposalCourse, len(courses))
	copy(ordered, courses)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	run := 0
	for _, pc := range ordered {
		if pc.IsCompleted {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// AllCompleted reports whether every course in the proposal is completed.
// False for an empty path - nothing to auto-complete.
func AllCompleted(courses []types.ProposalCourse) bool {
	if len(courses) == 0 {
		return false
	}
	for _, pc := range courses {
		if !pc.IsCompleted {
			return false
		}
	}
	return true
}

// TotalXP sums the XP carried by a set of awards.
func TotalXP(awards []Award) int {
	sum := 0
	for _, a := range awards {
		sum += a.XP
	}
	return sum
}
