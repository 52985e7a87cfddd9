package proposal

import "github.com/talentpath/talentpath/src/api/types"

type transition struct {
	from string
	to   string
}

// Actor-initiated transitions. Everything else is rejected, including any
// attempt to reach "completed" directly - that status is only ever set by the
// progress tracker when the last course finishes.
var allowedTransitions = map[string]map[transition]bool{
	types.RoleCompany: {
		{types.StatusDraft, types.StatusSent}:      true,
		{types.StatusAccepted, types.StatusHired}:  true,
		{types.StatusCompleted, types.StatusHired}: true,
	},
	types.RoleTalent: {
		{types.StatusSent, types.StatusAccepted}: true,
		{types.StatusSent, types.StatusRejected}: true,
	},
}

// CanTransition reports whether the given role may move a proposal from one
// status to another.
func CanTransition(role, from, to string) bool {
	return allowedTransitions[role][transition{from, to}]
}

// ValidStatus reports whether s is one of the known proposal statuses.
func ValidStatus(s string) bool {
	switch s {
	case types.StatusDraft, types.StatusSent, types.StatusAccepted,
		types.StatusRejected, types.StatusCompleted, types.StatusHired:
		return true
	}
	return false
}

// activeStatus reports whether messaging and course notes are open on a
// proposal: the talent accepted it and it has not been rejected.
func activeStatus(s string) bool {
	switch s {
	case types.StatusAccepted, types.StatusCompleted, types.StatusHired:
		return true
	}
	return false
}
