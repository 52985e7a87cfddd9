package proposal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpath/talentpath/src/api/types"
)

func TestProgressRatio(t *testing.T) {
	assert.Equal(t, 0.0, ProgressRatio(nil))
	assert.Equal(t, 0.0, ProgressRatio(path(4)))

	courses := path(4)
	complete(courses, 0)
	assert.Equal(t, 0.25, ProgressRatio(courses))
	complete(courses, 1)
	complete(courses, 2)
	complete(courses, 3)
	assert.Equal(t, 1.0, ProgressRatio(courses))
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	assert.False(t, IsOverdue(types.ProposalCourse{}, now), "no deadline")
	assert.False(t, IsOverdue(types.ProposalCourse{Deadline: &future}, now), "deadline ahead")
	assert.True(t, IsOverdue(types.ProposalCourse{Deadline: &past}, now), "deadline behind")
	assert.False(t, IsOverdue(types.ProposalCourse{Deadline: &past, IsCompleted: true}, now),
		"completed courses are never overdue")
}

func TestDaysRemaining(t *testing.T) {
	now := time.Now()

	assert.Nil(t, DaysRemaining(types.ProposalCourse{}, now))

	past := now.Add(-72 * time.Hour)
	assert.Nil(t, DaysRemaining(types.ProposalCourse{Deadline: &past, IsCompleted: true}, now))

	in5 := now.Add(5*24*time.Hour + time.Hour)
	d := DaysRemaining(types.ProposalCourse{Deadline: &in5}, now)
	require.NotNil(t, d)
	assert.Equal(t, 5, *d)

	d = DaysRemaining(types.ProposalCourse{Deadline: &past}, now)
	require.NotNil(t, d)
	assert.Equal(t, -3, *d)

	// Overdue by less than a day still reads negative, never zero.
	justPast := now.Add(-12 * time.Hour)
	d = DaysRemaining(types.ProposalCourse{Deadline: &justPast}, now)
	require.NotNil(t, d)
	assert.Equal(t, -1, *d)
	assert.True(t, IsOverdue(types.ProposalCourse{Deadline: &justPast}, now))

	// Due later today: zero remaining, not yet overdue.
	laterToday := now.Add(6 * time.Hour)
	d = DaysRemaining(types.ProposalCourse{Deadline: &laterToday}, now)
	require.NotNil(t, d)
	assert.Equal(t, 0, *d)
	assert.False(t, IsOverdue(types.ProposalCourse{Deadline: &laterToday}, now))
}
