package proposal

import (
	"context"
	"errors"
	"log"
	"time"
	"unicode/utf8"

	"github.com/talentpath/talentpath/src/api/metrics"
	"github.com/talentpath/talentpath/src/api/types"
	"gorm.io/gorm"
)

// Notification kinds
const (
	NoticeProposalSent      = "proposal_sent"
	NoticeProposalAccepted  = "proposal_accepted"
	NoticeProposalRejected  = "proposal_rejected"
	NoticeProposalCompleted = "proposal_completed"
	NoticeCourseStarted     = "course_started"
	NoticeCourseCompleted   = "course_completed"
	NoticeTalentHired       = "talent_hired"
	NoticeMessageReceived   = "message_received"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uint64
	Role string
}

// Notifier is the outbound side channel. Dispatch failures never surface to
// callers; the engine only logs them.
type Notifier interface {
	Dispatch(ctx context.Context, kind string, payload map[string]interface{}) error
}

type Engine struct {
	db       *gorm.DB
	notifier Notifier
}

func NewEngine(db *gorm.DB, notifier Notifier) *Engine {
	return &Engine{db: db, notifier: notifier}
}

type CreateInput struct {
	TalentID    uint64
	Message     string
	BudgetRange string
	CourseIDs   []uint64
}

type UpdateInput struct {
	Status      string
	Message     *string
	BudgetRange *string
	HireNotes   string
}

type NotesInput struct {
	TalentNotes  *string
	CompanyNotes *string
	Deadline     *time.Time
}

// Create opens a new proposal in "sent" status with the given learning path.
func (e *Engine) Create(ctx context.Context, actor Actor, in CreateInput) (View, error) {
	if actor.Role != types.RoleCompany {
		return View{}, ErrForbidden
	}
	if in.TalentID == 0 || len(in.CourseIDs) == 0 {
		return View{}, ErrValidation
	}
	if in.TalentID == actor.ID {
		return View{}, ErrAlreadyDone
	}
	seen := make(map[uint64]bool, len(in.CourseIDs))
	for _, id := range in.CourseIDs {
		if seen[id] {
			return View{}, ErrAlreadyDone
		}
		seen[id] = true
	}

	var prop types.Proposal
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var talent types.User
		if err := tx.First(&talent, "id = ? AND role = ?", in.TalentID, types.RoleTalent).Error; err != nil {
			return notFoundOr(err)
		}
		if !talent.IsActive {
			return ErrValidation
		}

		var courses []types.Course
		if err := tx.Find(&courses, "id IN ?", in.CourseIDs).Error; err != nil {
			return err
		}
		if len(courses) != len(in.CourseIDs) {
			return ErrNotFound
		}
		for _, c := range courses {
			if !c.IsActive {
				return ErrValidation
			}
		}

		prop = types.Proposal{
			CompanyID:   actor.ID,
			TalentID:    in.TalentID,
			Status:      types.StatusSent,
			Message:     in.Message,
			BudgetRange: in.BudgetRange,
		}
		if err := tx.Create(&prop).Error; err != nil {
			return err
		}
		for i, cid := range in.CourseIDs {
			pc := types.ProposalCourse{ProposalID: prop.ID, CourseID: cid, Position: i}
			if err := tx.Create(&pc).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return View{}, err
	}

	metrics.ProposalsCreated.Inc()
	e.notify(ctx, NoticeProposalSent, prop, prop.TalentID)
	return e.view(ctx, prop.ID)
}

// List returns the actor's proposals, newest first. Talents never see drafts.
func (e *Engine) List(ctx context.Context, actor Actor, status string, page, pageSize int) ([]View, int64, error) {
	q := e.db.WithContext(ctx).Model(&types.Proposal{})
	switch actor.Role {
	case types.RoleCompany:
		q = q.Where("company_id = ?", actor.ID)
	case types.RoleTalent:
		q = q.Where("talent_id = ? AND status <> ?", actor.ID, types.StatusDraft)
	default:
		return nil, 0, ErrForbidden
	}
	if status != "" {
		if !ValidStatus(status) {
			return nil, 0, ErrValidation
		}
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var props []types.Proposal
	if err := q.Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&props).Error; err != nil {
		return nil, 0, err
	}

	views := make([]View, 0, len(props))
	for _, p := range props {
		v, err := e.view(ctx, p.ID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, nil
}

// Get returns the proposal view for a participant. Non-participants get a
// not-found, never a forbidden - reads must not confirm existence.
func (e *Engine) Get(ctx context.Context, actor Actor, id uint64) (View, error) {
	var p types.Proposal
	if err := e.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return View{}, notFoundOr(err)
	}
	if actor.ID != p.CompanyID && actor.ID != p.TalentID {
		return View{}, ErrNotFound
	}
	if actor.ID == p.TalentID && actor.Role == types.RoleTalent && p.Status == types.StatusDraft {
		return View{}, ErrNotFound
	}
	return e.view(ctx, id)
}

// Update applies a role-gated mutation: companies may edit draft fields and
// move draft->sent / accepted->hired / completed->hired, talents may only
// answer a sent proposal.
func (e *Engine) Update(ctx context.Context, actor Actor, id uint64, in UpdateInput) (View, error) {
	if in.Status == "" && in.Message == nil && in.BudgetRange == nil && in.HireNotes == "" {
		return View{}, ErrValidation
	}
	var (
		prop   types.Proposal
		notice string
		recip  uint64
	)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prop, "id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		var err error
		switch actor.Role {
		case types.RoleCompany:
			notice, recip, err = e.updateAsCompany(tx, actor, &prop, in)
		case types.RoleTalent:
			notice, recip, err = e.updateAsTalent(tx, actor, &prop, in)
		default:
			err = ErrForbidden
		}
		return err
	})
	if err != nil {
		return View{}, err
	}

	if notice != "" {
		metrics.Transitions.WithLabelValues(prop.Status).Inc()
		e.notify(ctx, notice, prop, recip)
	}
	return e.view(ctx, id)
}

func (e *Engine) updateAsCompany(tx *gorm.DB, actor Actor, p *types.Proposal, in UpdateInput) (string, uint64, error) {
	if p.CompanyID != actor.ID {
		return "", 0, ErrForbidden
	}
	if in.Message != nil || in.BudgetRange != nil {
		if p.Status != types.StatusDraft {
			return "", 0, ErrInvalidTransition
		}
		if in.Message != nil {
			p.Message = *in.Message
		}
		if in.BudgetRange != nil {
			p.BudgetRange = *in.BudgetRange
		}
	}
	if in.HireNotes != "" && in.Status != types.StatusHired {
		return "", 0, ErrValidation
	}

	notice := ""
	var recip uint64
	if in.Status != "" {
		if !ValidStatus(in.Status) {
			return "", 0, ErrValidation
		}
		if !CanTransition(types.RoleCompany, p.Status, in.Status) {
			return "", 0, ErrInvalidTransition
		}
		p.Status = in.Status
		notice, recip = NoticeProposalSent, p.TalentID
		if in.Status == types.StatusHired {
			now := time.Now()
			p.HiredAt = &now
			p.HireNotes = in.HireNotes
			if err := markTalentHired(tx, p.TalentID, p.CompanyID); err != nil {
				return "", 0, err
			}
			notice = NoticeTalentHired
		}
	}
	return notice, recip, tx.Save(p).Error
}

func (e *Engine) updateAsTalent(tx *gorm.DB, actor Actor, p *types.Proposal, in UpdateInput) (string, uint64, error) {
	if p.TalentID != actor.ID {
		return "", 0, ErrForbidden
	}
	// Talents answer with a status and nothing else.
	if in.Message != nil || in.BudgetRange != nil || in.HireNotes != "" {
		return "", 0, ErrValidation
	}
	if in.Status == "" {
		return "", 0, ErrValidation
	}
	if !ValidStatus(in.Status) {
		return "", 0, ErrValidation
	}
	if !CanTransition(types.RoleTalent, p.Status, in.Status) {
		return "", 0, ErrInvalidTransition
	}
	p.Status = in.Status

	notice := NoticeProposalAccepted
	if in.Status == types.StatusRejected {
		notice = NoticeProposalRejected
	}
	return notice, p.CompanyID, tx.Save(p).Error
}

// markTalentHired is the one write that leaves the proposal aggregate: the
// talent's record is flagged employed and attributed to the hiring company.
func markTalentHired(tx *gorm.DB, talentID, companyID uint64) error {
	return tx.Model(&types.User{}).Where("id = ?", talentID).
		Updates(map[string]interface{}{"is_employed": true, "hired_by_id": companyID}).Error
}

// StartCourse marks a course started and awards the start milestones.
func (e *Engine) StartCourse(ctx context.Context, actor Actor, proposalID, courseID uint64) (View, error) {
	var prop types.Proposal
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pc, err := e.openCourse(tx, actor, &prop, proposalID, courseID)
		if err != nil {
			return err
		}
		if pc.StartedAt != nil {
			return ErrAlreadyDone
		}

		now := time.Now()
		pc.StartedAt = &now
		if err := tx.Save(pc).Error; err != nil {
			return err
		}

		courses, milestones, err := e.pathState(tx, proposalID)
		if err != nil {
			return err
		}
		awards := StartAwards(courses, existingTypes(milestones))
		return awardMilestones(tx, &prop, awards, now)
	})
	if err != nil {
		return View{}, err
	}

	e.notify(ctx, NoticeCourseStarted, prop, prop.CompanyID)
	return e.view(ctx, proposalID)
}

// CompleteCourse marks a course completed, awards the completion milestones
// and auto-completes the proposal when the path is done.
func (e *Engine) CompleteCourse(ctx context.Context, actor Actor, proposalID, courseID uint64) (View, error) {
	var (
		prop   types.Proposal
		notice = NoticeCourseCompleted
	)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pc, err := e.openCourse(tx, actor, &prop, proposalID, courseID)
		if err != nil {
			return err
		}
		if pc.IsCompleted {
			return ErrAlreadyDone
		}

		// Missing catalog rows degrade to the unknown-level reward.
		var course types.Course
		_ = tx.First(&course, "id = ?", pc.CourseID).Error

		now := time.Now()
		pc.IsCompleted = true
		pc.CompletedAt = &now
		pc.XPEarned = XPForLevel(course.Level)
		if err := tx.Save(pc).Error; err != nil {
			return err
		}

		courses, milestones, err := e.pathState(tx, proposalID)
		if err != nil {
			return err
		}
		awards := CompletionAwards(courses, course.Level, existingTypes(milestones))
		if err := awardMilestones(tx, &prop, awards, now); err != nil {
			return err
		}

		if AllCompleted(courses) {
			// The one system-triggered transition: no actor gate applies.
			prop.Status = types.StatusCompleted
			notice = NoticeProposalCompleted
			if err := tx.Save(&prop).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return View{}, err
	}

	metrics.CourseCompletions.Inc()
	e.notify(ctx, notice, prop, prop.CompanyID)
	return e.view(ctx, proposalID)
}

// openCourse loads and gates a course operation: proposal exists, caller is
// the recipient talent, proposal is accepted, the course link exists.
func (e *Engine) openCourse(tx *gorm.DB, actor Actor, prop *types.Proposal, proposalID, courseID uint64) (*types.ProposalCourse, error) {
	if err := tx.First(prop, "id = ?", proposalID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if actor.Role != types.RoleTalent || prop.TalentID != actor.ID {
		return nil, ErrForbidden
	}
	if prop.Status != types.StatusAccepted {
		return nil, ErrInvalidTransition
	}
	var pc types.ProposalCourse
	if err := tx.First(&pc, "proposal_id = ? AND course_id = ?", proposalID, courseID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &pc, nil
}

func (e *Engine) pathState(tx *gorm.DB, proposalID uint64) ([]types.ProposalCourse, []types.ProposalMilestone, error) {
	var courses []types.ProposalCourse
	if err := tx.Find(&courses, "proposal_id = ?", proposalID).Error; err != nil {
		return nil, nil, err
	}
	var milestones []types.ProposalMilestone
	if err := tx.Find(&milestones, "proposal_id = ?", proposalID).Error; err != nil {
		return nil, nil, err
	}
	return courses, milestones, nil
}

// awardMilestones persists the awards of one triggering event and adds their
// XP to the proposal total in a single update.
func awardMilestones(tx *gorm.DB, p *types.Proposal, awards []Award, now time.Time) error {
	for _, a := range awards {
		entry := catalog[a.Type]
		m := types.ProposalMilestone{
			ProposalID:  p.ID,
			Type:        a.Type,
			Title:       entry.Title,
			Description: entry.Description,
			XP:          a.XP,
			AchievedAt:  now,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		metrics.MilestonesAwarded.WithLabelValues(a.Type).Inc()
	}
	if sum := TotalXP(awards); sum > 0 {
		p.TotalXP += sum
		if err := tx.Model(p).Update("total_xp", p.TotalXP).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateCourseNotes sets talent/company notes or the deadline on a course.
// Open only once the proposal is active.
func (e *Engine) UpdateCourseNotes(ctx context.Context, actor Actor, proposalID, courseID uint64, in NotesInput) (View, error) {
	if in.TalentNotes == nil && in.CompanyNotes == nil && in.Deadline == nil {
		return View{}, ErrValidation
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p types.Proposal
		if err := tx.First(&p, "id = ?", proposalID).Error; err != nil {
			return notFoundOr(err)
		}
		if !activeStatus(p.Status) {
			return ErrInvalidTransition
		}
		if in.TalentNotes != nil && (actor.Role != types.RoleTalent || p.TalentID != actor.ID) {
			return ErrForbidden
		}
		if (in.CompanyNotes != nil || in.Deadline != nil) &&
			(actor.Role != types.RoleCompany || p.CompanyID != actor.ID) {
			return ErrForbidden
		}

		var pc types.ProposalCourse
		if err := tx.First(&pc, "proposal_id = ? AND course_id = ?", proposalID, courseID).Error; err != nil {
			return notFoundOr(err)
		}
		if in.TalentNotes != nil {
			pc.TalentNotes = *in.TalentNotes
		}
		if in.CompanyNotes != nil {
			pc.CompanyNotes = *in.CompanyNotes
		}
		if in.Deadline != nil {
			pc.Deadline = in.Deadline
		}
		return tx.Save(&pc).Error
	})
	if err != nil {
		return View{}, err
	}
	return e.view(ctx, proposalID)
}

// ListMessages returns a proposal's message thread, oldest first. The thread
// only opens once the proposal is active.
func (e *Engine) ListMessages(ctx context.Context, actor Actor, proposalID uint64) ([]MessageView, error) {
	p, err := e.openThread(ctx, actor, proposalID)
	if err != nil {
		return nil, err
	}
	var msgs []types.ProposalMessage
	if err := e.db.WithContext(ctx).
		Where("proposal_id = ?", p.ID).Order("created_at asc").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{ID: m.ID, SenderID: m.SenderID, Body: m.Body, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

// validMessageBody bounds a message at 1-2000 characters. Counted in runes,
// not bytes, so the limit agrees with the binding layer on multibyte text.
func validMessageBody(body string) bool {
	n := utf8.RuneCountInString(body)
	return n >= 1 && n <= 2000
}

// SendMessage appends to a proposal's message thread.
func (e *Engine) SendMessage(ctx context.Context, actor Actor, proposalID uint64, body string) (MessageView, error) {
	if !validMessageBody(body) {
		return MessageView{}, ErrValidation
	}
	p, err := e.openThread(ctx, actor, proposalID)
	if err != nil {
		return MessageView{}, err
	}

	msg := types.ProposalMessage{ProposalID: p.ID, SenderID: actor.ID, Body: body}
	if err := e.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return MessageView{}, err
	}

	recip := p.CompanyID
	if actor.ID == p.CompanyID {
		recip = p.TalentID
	}
	e.notify(ctx, NoticeMessageReceived, p, recip)
	return MessageView{ID: msg.ID, SenderID: msg.SenderID, Body: msg.Body, CreatedAt: msg.CreatedAt}, nil
}

// openThread gates message access: participants only (non-participants get
// not-found, same as reads) and only on an active proposal.
func (e *Engine) openThread(ctx context.Context, actor Actor, proposalID uint64) (types.Proposal, error) {
	var p types.Proposal
	if err := e.db.WithContext(ctx).First(&p, "id = ?", proposalID).Error; err != nil {
		return p, notFoundOr(err)
	}
	if actor.ID != p.CompanyID && actor.ID != p.TalentID {
		return p, ErrNotFound
	}
	if !activeStatus(p.Status) {
		return p, ErrInvalidTransition
	}
	return p, nil
}

// view assembles the full derived read model for a proposal.
func (e *Engine) view(ctx context.Context, id uint64) (View, error) {
	db := e.db.WithContext(ctx)

	var p types.Proposal
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return View{}, notFoundOr(err)
	}
	courses, milestones, err := e.pathState(db, id)
	if err != nil {
		return View{}, err
	}

	meta := make(map[uint64]types.Course, len(courses))
	if len(courses) > 0 {
		ids := make([]uint64, 0, len(courses))
		for _, pc := range courses {
			ids = append(ids, pc.CourseID)
		}
		var rows []types.Course
		if err := db.Find(&rows, "id IN ?", ids).Error; err != nil {
			return View{}, err
		}
		for _, c := range rows {
			meta[c.ID] = c
		}
	}

	// Missing participants degrade to a placeholder, never a failed read.
	var company, talent *types.User
	var cu, tu types.User
	if err := db.First(&cu, "id = ?", p.CompanyID).Error; err == nil {
		company = &cu
	}
	if err := db.First(&tu, "id = ?", p.TalentID).Error; err == nil {
		talent = &tu
	}

	return Assemble(p, courses, meta, milestones, company, talent, time.Now()), nil
}

func (e *Engine) notify(ctx context.Context, kind string, p types.Proposal, recipient uint64) {
	if e.notifier == nil {
		return
	}
	payload := map[string]interface{}{
		"kind":         kind,
		"proposal_id":  p.ID,
		"company_id":   p.CompanyID,
		"talent_id":    p.TalentID,
		"status":       p.Status,
		"recipient_id": recipient,
		"time":         time.Now().Unix(),
	}
	if err := e.notifier.Dispatch(ctx, kind, payload); err != nil {
		log.Printf("notify %s for proposal %d: %v", kind, p.ID, err)
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
