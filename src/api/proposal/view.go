package proposal

import (
	"sort"
	"time"

	"github.com/talentpath/talentpath/src/api/types"
)

// Shown in place of a company or talent whose account no longer resolves.
const deletedUserName = "Deleted user"

type CourseView struct {
	ID            uint64     `json:"id"`
	CourseID      uint64     `json:"course_id"`
	Position      int        `json:"position"`
	Title         string     `json:"title"`
	Level         string     `json:"level"`
	Category      string     `json:"category"`
	URL           string     `json:"url,omitempty"`
	DurationHours uint32     `json:"duration_hours,omitempty"`
	IsCompleted   bool       `json:"is_completed"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	TalentNotes   string     `json:"talent_notes,omitempty"`
	CompanyNotes  string     `json:"company_notes,omitempty"`
	XPEarned      int        `json:"xp_earned"`
	IsOverdue     bool       `json:"is_overdue"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
}

type MessageView struct {
	ID        uint64    `json:"id"`
	SenderID  uint64    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type MilestoneView struct {
	ID          uint64    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	XP          int       `json:"xp"`
	AchievedAt  time.Time `json:"achieved_at"`
}

type View struct {
	ID          uint64          `json:"id"`
	CompanyID   uint64          `json:"company_id"`
	TalentID    uint64          `json:"talent_id"`
	CompanyName string          `json:"company_name"`
	TalentName  string          `json:"talent_name"`
	Status      string          `json:"status"`
	Message     string          `json:"message,omitempty"`
	BudgetRange string          `json:"budget_range,omitempty"`
	Progress    float64         `json:"progress"`
	TotalXP     int             `json:"total_xp"`
	HiredAt     *time.Time      `json:"hired_at,omitempty"`
	HireNotes   string          `json:"hire_notes,omitempty"`
	Courses     []CourseView    `json:"courses"`
	Milestones  []MilestoneView `json:"milestones"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Assemble builds the derived read view of a proposal. Everything here is a
// pure projection of stored state plus the clock; nothing is persisted.
func Assemble(p types.Proposal, courses []types.ProposalCourse, meta map[uint64]types.Course,
	milestones []types.ProposalMilestone, company, talent *types.User, now time.Time) View {

	cvs := make([]CourseView, 0, len(courses))
	for _, pc := range courses {
		cv := CourseView{
			ID:            pc.ID,
			CourseID:      pc.CourseID,
			Position:      pc.Position,
			IsCompleted:   pc.IsCompleted,
			StartedAt:     pc.StartedAt,
			CompletedAt:   pc.CompletedAt,
			Deadline:      pc.Deadline,
			TalentNotes:   pc.TalentNotes,
			CompanyNotes:  pc.CompanyNotes,
			XPEarned:      pc.XPEarned,
			IsOverdue:     IsOverdue(pc, now),
			DaysRemaining: DaysRemaining(pc, now),
		}
		if c, ok := meta[pc.CourseID]; ok {
			cv.Title = c.Title
			cv.Level = c.Level
			cv.Category = c.Category
			cv.URL = c.URL
			cv.DurationHours = c.DurationHours
		}
		cvs = append(cvs, cv)
	}
	sort.Slice(cvs, func(i, j int) bool { return cvs[i].Position < cvs[j].Position })

	mvs := make([]MilestoneView, 0, len(milestones))
	for _, m := range milestones {
		mvs = append(mvs, MilestoneView{
			ID:          m.ID,
			Type:        m.Type,
			Title:       m.Title,
			Description: m.Description,
			XP:          m.XP,
			AchievedAt:  m.AchievedAt,
		})
	}

	return View{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		TalentID:    p.TalentID,
		CompanyName: companyDisplayName(company),
		TalentName:  talentDisplayName(talent),
		Status:      p.Status,
		Message:     p.Message,
		BudgetRange: p.BudgetRange,
		Progress:    ProgressRatio(courses),
		TotalXP:     p.TotalXP,
		HiredAt:     p.HiredAt,
		HireNotes:   p.HireNotes,
		Courses:     cvs,
		Milestones:  mvs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func companyDisplayName(u *types.User) string {
	if u == nil {
		return deletedUserName
	}
	if u.CompanyName != "" {
		return u.CompanyName
	}
	return u.Name
}

func talentDisplayName(u *types.User) string {
	if u == nil {
		return deletedUserName
	}
	return u.Name
}
