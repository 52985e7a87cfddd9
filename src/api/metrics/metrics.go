package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProposalsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "talentpath_proposals_created_total",
		Help: "Total number of proposals created",
	})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentpath_proposal_transitions_total",
		Help: "Total number of successful proposal status transitions",
	}, []string{"status"})

	MilestonesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentpath_milestones_awarded_total",
		Help: "Total number of milestones awarded",
	}, []string{"type"})

	CourseCompletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "talentpath_course_completions_total",
		Help: "Total number of proposal courses completed",
	})
)
