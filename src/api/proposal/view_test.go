package proposal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpath/talentpath/src/api/types"
)

func TestAssembleOrdersCoursesByPosition(t *testing.T) {
	now := time.Now()
	p := types.Proposal{ID: 7, CompanyID: 1, TalentID: 2, Status: types.StatusAccepted, TotalXP: 135}

	courses := []types.ProposalCourse{
		{ID: 31, CourseID: 103, Position: 2},
		{ID: 29, CourseID: 101, Position: 0},
		{ID: 30, CourseID: 102, Position: 1},
	}
	meta := map[uint64]types.Course{
		101: {ID: 101, Title: "Go Fundamentals", Level: types.LevelBeginner, Category: "backend"},
		102: {ID: 102, Title: "Relational Databases", Level: types.LevelIntermediate, Category: "backend"},
		103: {ID: 103, Title: "Distributed Systems", Level: types.LevelAdvanced, Category: "backend"},
	}
	company := &types.User{ID: 1, Role: types.RoleCompany, Name: "Ann Recruiter", CompanyName: "Acme Corp"}
	talent := &types.User{ID: 2, Role: types.RoleTalent, Name: "Bob Dev"}

	v := Assemble(p, courses, meta, nil, company, talent, now)

	require.Len(t, v.Courses, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{v.Courses[0].Position, v.Courses[1].Position, v.Courses[2].Position})
	assert.Equal(t, "Go Fundamentals", v.Courses[0].Title)
	assert.Equal(t, types.LevelAdvanced, v.Courses[2].Level)

	assert.Equal(t, "Acme Corp", v.CompanyName)
	assert.Equal(t, "Bob Dev", v.TalentName)
	assert.Equal(t, 135, v.TotalXP)
	assert.Equal(t, 0.0, v.Progress)
}

func TestAssembleCompanyNameFallback(t *testing.T) {
	p := types.Proposal{ID: 1, CompanyID: 1, TalentID: 2}
	company := &types.User{ID: 1, Role: types.RoleCompany, Name: "Solo Founder"}

	v := Assemble(p, nil, nil, nil, company, nil, time.Now())
	assert.Equal(t, "Solo Founder", v.CompanyName)
	assert.Equal(t, deletedUserName, v.TalentName)
}

func TestAssembleMissingParticipants(t *testing.T) {
	p := types.Proposal{ID: 1, CompanyID: 1, TalentID: 2}
	v := Assemble(p, nil, nil, nil, nil, nil, time.Now())
	assert.Equal(t, deletedUserName, v.CompanyName)
	assert.Equal(t, deletedUserName, v.TalentName)
}

func TestAssembleDerivedCourseFields(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	p := types.Proposal{ID: 1, CompanyID: 1, TalentID: 2, Status: types.StatusAccepted}

	courses := []types.ProposalCourse{
		{ID: 1, CourseID: 10, Position: 0, Deadline: &past},
		{ID: 2, CourseID: 11, Position: 1, IsCompleted: true, CompletedAt: &past, XPEarned: 200},
	}

	v := Assemble(p, courses, nil, nil, nil, nil, now)
	require.Len(t, v.Courses, 2)

	assert.True(t, v.Courses[0].IsOverdue)
	require.NotNil(t, v.Courses[0].DaysRemaining)
	assert.Equal(t, -1, *v.Courses[0].DaysRemaining)

	assert.False(t, v.Courses[1].IsOverdue)
	assert.Nil(t, v.Courses[1].DaysRemaining)
	assert.Equal(t, 200, v.Courses[1].XPEarned)
	assert.Equal(t, 0.5, v.Progress)
}

func TestAssembleMilestones(t *testing.T) {
	p := types.Proposal{ID: 1, CompanyID: 1, TalentID: 2, TotalXP: 60}
	ms := []types.ProposalMilestone{
		{ID: 1, ProposalID: 1, Type: MilestoneCourseStarted, Title: "Course started", XP: 10},
		{ID: 2, ProposalID: 1, Type: Milestone25Percent, Title: "25% complete", XP: 50},
	}

	v := Assemble(p, nil, nil, ms, nil, nil, time.Now())
	require.Len(t, v.Milestones, 2)
	assert.Equal(t, MilestoneCourseStarted, v.Milestones[0].Type)
	assert.Equal(t, 50, v.Milestones[1].XP)
}
