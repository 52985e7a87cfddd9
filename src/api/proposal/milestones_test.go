package proposal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpath/talentpath/src/api/types"
)

func path(n int) []types.ProposalCourse {
	courses := make([]types.ProposalCourse, n)
	for i := range courses {
		courses[i] = types.ProposalCourse{ID: uint64(i + 1), CourseID: uint64(i + 1), Position: i}
	}
	return courses
}

func complete(courses []types.ProposalCourse, position int) {
	now := time.Now()
	for i := range courses {
		if courses[i].Position == position {
			courses[i].IsCompleted = true
			courses[i].CompletedAt = &now
		}
	}
}

func start(courses []types.ProposalCourse, position int) {
	now := time.Now()
	for i := range courses {
		if courses[i].Position == position {
			courses[i].StartedAt = &now
		}
	}
}

func awardTypes(awards []Award) []string {
	out := make([]string, 0, len(awards))
	for _, a := range awards {
		out = append(out, a.Type)
	}
	return out
}

// applyAwards mimics persistence: awarded types join the dedup set.
func applyAwards(existing map[string]bool, awards []Award) {
	for _, a := range awards {
		existing[a.Type] = true
	}
}

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, 100, XPForLevel(types.LevelBeginner))
	assert.Equal(t, 200, XPForLevel(types.LevelIntermediate))
	assert.Equal(t, 300, XPForLevel(types.LevelAdvanced))
	assert.Equal(t, 100, XPForLevel("mystery"))
	assert.Equal(t, 100, XPForLevel(""))
}

func TestStartAwardsFirstCourseOnce(t *testing.T) {
	courses := path(3)
	existing := map[string]bool{}

	start(courses, 0)
	awards := StartAwards(courses, existing)
	require.ElementsMatch(t, []string{MilestoneCourseStarted, MilestoneFirstCourse}, awardTypes(awards))
	assert.Equal(t, 35, TotalXP(awards))
	applyAwards(existing, awards)

	start(courses, 1)
	awards = StartAwards(courses, existing)
	require.ElementsMatch(t, []string{MilestoneCourseStarted}, awardTypes(awards))
	assert.Equal(t, 10, TotalXP(awards))
}

func TestStartingThreeCoursesAwardsNoStreak(t *testing.T) {
	// Scenario: starting courses consecutively is not a streak - only
	// completions count.
	courses := path(3)
	existing := map[string]bool{}
	for pos := 0; pos < 3; pos++ {
		start(courses, pos)
		awards := StartAwards(courses, existing)
		assert.NotContains(t, awardTypes(awards), MilestoneStreak3)
		applyAwards(existing, awards)
	}
	assert.False(t, existing[MilestoneStreak3])
}

func TestCompletionAwardsQuarterThreshold(t *testing.T) {
	// Four courses, complete the one at order 1: course XP plus 25_percent.
	courses := path(4)
	complete(courses, 1)

	awards := CompletionAwards(courses, types.LevelIntermediate, map[string]bool{})
	require.ElementsMatch(t, []string{MilestoneCourseCompleted, Milestone25Percent}, awardTypes(awards))
	assert.Equal(t, 200+50, TotalXP(awards))
}

func TestCompletionAwardsFullRun(t *testing.T) {
	// Complete all four courses one by one: each once-per-proposal threshold
	// fires exactly once, and the streak fires when three consecutive
	// positions are done.
	courses := path(4)
	existing := map[string]bool{}
	counts := map[string]int{}

	for _, pos := range []int{1, 0, 2, 3} {
		complete(courses, pos)
		awards := CompletionAwards(courses, types.LevelBeginner, existing)
		applyAwards(existing, awards)
		for _, a := range awards {
			counts[a.Type]++
		}
	}

	assert.Equal(t, 4, counts[MilestoneCourseCompleted])
	assert.Equal(t, 1, counts[Milestone25Percent])
	assert.Equal(t, 1, counts[Milestone50Percent])
	assert.Equal(t, 1, counts[Milestone75Percent])
	assert.Equal(t, 1, counts[MilestoneAllComplete])
	assert.Equal(t, 1, counts[MilestoneStreak3])
	assert.True(t, AllCompleted(courses))
}

func TestCompletionAwardsStreakOfThree(t *testing.T) {
	// Complete positions 0,1,2 of a longer path: streak_3 exactly once.
	courses := path(6)
	existing := map[string]bool{}

	complete(courses, 0)
	applyAwards(existing, CompletionAwards(courses, types.LevelBeginner, existing))
	complete(courses, 1)
	applyAwards(existing, CompletionAwards(courses, types.LevelBeginner, existing))

	complete(courses, 2)
	awards := CompletionAwards(courses, types.LevelBeginner, existing)
	assert.Contains(t, awardTypes(awards), MilestoneStreak3)
	applyAwards(existing, awards)

	// A fourth consecutive completion must not re-award the streak.
	complete(courses, 3)
	awards = CompletionAwards(courses, types.LevelBeginner, existing)
	assert.NotContains(t, awardTypes(awards), MilestoneStreak3)
}

func TestCompletionAwardsStreakAnywhereInPath(t *testing.T) {
	// A run of three consecutive positions qualifies wherever it sits.
	courses := path(6)
	complete(courses, 3)
	complete(courses, 4)
	complete(courses, 5)

	awards := CompletionAwards(courses, types.LevelBeginner, map[string]bool{})
	assert.Contains(t, awardTypes(awards), MilestoneStreak3)
}

func TestCompletionAwardsNoStreakWhenGapped(t *testing.T) {
	courses := path(5)
	complete(courses, 0)
	complete(courses, 2)
	complete(courses, 4)

	awards := CompletionAwards(courses, types.LevelBeginner, map[string]bool{})
	assert.NotContains(t, awardTypes(awards), MilestoneStreak3)
}

func TestCompletionAwardsBackfillsMissedThresholds(t *testing.T) {
	// Reaching 100% in one event also fires the thresholds that were never
	// awarded along the way.
	courses := path(2)
	complete(courses, 0)
	complete(courses, 1)

	awards := CompletionAwards(courses, types.LevelAdvanced, map[string]bool{})
	require.ElementsMatch(t, []string{
		MilestoneCourseCompleted,
		Milestone25Percent, Milestone50Percent, Milestone75Percent, MilestoneAllComplete,
	}, awardTypes(awards))
	assert.Equal(t, 300+4*50, TotalXP(awards))
}

func TestHasCompletedRunUnsortedInput(t *testing.T) {
	courses := path(4)
	complete(courses, 1)
	complete(courses, 2)
	complete(courses, 3)

	// Shuffle so the scan has to order by position itself.
	courses[0], courses[3] = courses[3], courses[0]
	assert.True(t, hasCompletedRun(courses, 3))
}

func TestAllCompleted(t *testing.T) {
	assert.False(t, AllCompleted(nil))
	assert.False(t, AllCompleted(path(1)))

	courses := path(2)
	complete(courses, 0)
	assert.False(t, AllCompleted(courses))
	complete(courses, 1)
	assert.True(t, AllCompleted(courses))
}

func TestCatalogOnceFlags(t *testing.T) {
	// Recurring types are keyed by the triggering event, not deduped by type.
	assert.False(t, catalog[MilestoneCourseStarted].Once)
	assert.False(t, catalog[MilestoneCourseCompleted].Once)

	for _, typ := range []string{
		MilestoneFirstCourse, Milestone25Percent, Milestone50Percent,
		Milestone75Percent, MilestoneAllComplete, MilestoneStreak3,
	} {
		assert.True(t, catalog[typ].Once, typ)
	}
}
