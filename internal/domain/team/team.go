package team

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	MemberRoleLead   MemberRole = "lead"
	MemberRoleMember MemberRole = "member"
)

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	LeadID      *string   `json:"leadId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func New(name string, description *string, leadID *string) Team {
	now := time.Now().UTC()

	return Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		LeadID:      leadID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (t *Team) SetLead(leadID *string) {
	t.LeadID = leadID
	t.UpdatedAt = time.Now().UTC()
}

type Member struct {
	ID       string     `json:"id"`
	TeamID   string     `json:"teamId"`
	UserID   string     `json:"userId"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}

func NewMember(teamID, userID string, role MemberRole) Member {
	if role == "" {
		role = MemberRoleMember
	}

	return Member{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
}

func (m *Member) IsLead() bool {
	return m.Role == MemberRoleLead
}

func (m *Member) PromoteToLead() {
	m.Role = MemberRoleLead
}
