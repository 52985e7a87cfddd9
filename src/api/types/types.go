package types

import "time"

// Proposal statuses
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusHired     = "hired"
)

// User roles
const (
	RoleCompany = "company"
	RoleTalent  = "talent"
)

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Users (companies and talents)
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	Role         string `gorm:"size:16;index;not null"` // company|talent
	Name         string `gorm:"size:128;not null"`
	CompanyName  string `gorm:"size:128"` // display name for company accounts
	IsActive     bool   `gorm:"default:true"`
	IsPublic     bool   `gorm:"default:true"`
	IsEmployed   bool   `gorm:"default:false"`
	HiredByID    *uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Course catalog entries (read-only from the proposal engine's perspective)
type Course struct {
	ID            uint64 `gorm:"primaryKey"`
	Title         string `gorm:"size:255;not null"`
	Level         string `gorm:"size:16;not null"` // beginner|intermediate|advanced
	Category      string `gorm:"size:64"`
	URL           string `gorm:"size:512"`
	DurationHours uint32 `gorm:"default:0"`
	IsActive      bool   `gorm:"default:true"`
	CreatedAt     time.Time
}

// Training proposals from a company to a talent
type Proposal struct {
	ID          uint64 `gorm:"primaryKey"`
	CompanyID   uint64 `gorm:"index;not null"`
	TalentID    uint64 `gorm:"index;not null"`
	Status      string `gorm:"size:16;index;not null"`
	Message     string `gorm:"type:text"`
	BudgetRange string `gorm:"size:64"`
	TotalXP     int    `gorm:"not null;default:0"`
	HiredAt     *time.Time
	HireNotes   string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// One course's slot and progress inside a proposal's learning path
type ProposalCourse struct {
	ID           uint64 `gorm:"primaryKey"`
	ProposalID   uint64 `gorm:"not null;uniqueIndex:idx_proposal_course"`
	CourseID     uint64 `gorm:"not null;uniqueIndex:idx_proposal_course"`
	Position     int    `gorm:"not null"` // zero-based order in the path, immutable
	IsCompleted  bool   `gorm:"default:false"`
	CompletedAt  *time.Time
	StartedAt    *time.Time
	TalentNotes  string `gorm:"type:text"`
	CompanyNotes string `gorm:"type:text"`
	Deadline     *time.Time
	XPEarned     int `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Achievements awarded on a proposal
type ProposalMilestone struct {
	ID          uint64 `gorm:"primaryKey"`
	ProposalID  uint64 `gorm:"index;not null"`
	Type        string `gorm:"size:32;not null"`
	Title       string `gorm:"size:128;not null"`
	Description string `gorm:"size:255"`
	XP          int    `gorm:"not null"`
	AchievedAt  time.Time
}

// Messages between the company and the talent on an active proposal
type ProposalMessage struct {
	ID         uint64 `gorm:"primaryKey"`
	ProposalID uint64 `gorm:"index;not null"`
	SenderID   uint64 `gorm:"not null"`
	Body       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
