// Package team guards team formation, membership, and leadership changes.
//
// A team has exactly one active leader for as long as it is active. Every
// guard that could leave a team without a leader rejects the change.
package team

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
)

// Status is the lifecycle status of a team.
type Status string

const (
	StatusActive    Status = "active"
	StatusDisbanded Status = "disbanded"
)

// Role is a member's role on a team.
type Role string

const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// MemberStatus is a member's participation status.
type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberPending MemberStatus = "pending"
	MemberLeft    MemberStatus = "left"
)

// SubmissionStatus is the status of the team's project, if any.
type SubmissionStatus string

const (
	SubmissionNone         SubmissionStatus = ""
	SubmissionDraft        SubmissionStatus = "draft"
	SubmissionSubmitted    SubmissionStatus = "submitted"
	SubmissionDisqualified SubmissionStatus = "disqualified"
)

// Member is one user's membership on a team.
type Member struct {
	UserID string       `json:"user_id"`
	Role   Role         `json:"role"`
	Status MemberStatus `json:"status"`
}

// Team is a snapshot of a team supplied by the caller.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MaxSize     int      `json:"max_size"`
	CurrentSize int      `json:"current_size"`
	Status      Status   `json:"status"`
	LeaderID    string   `json:"leader_id"`
	Members     []Member `json:"members,omitempty"`
}

// Context carries the clock and event state a membership change is judged
// against.
type Context struct {
	Now        time.Time        `json:"now"`
	Timeline   phase.Timeline   `json:"timeline"`
	Controls   phase.Controls   `json:"controls"`
	Submission SubmissionStatus `json:"submission,omitempty"`
}

// NormalizeStatus parses a team status label. Blank input means active.
func NormalizeStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case "", StatusActive:
		return StatusActive, true
	case StatusDisbanded:
		return StatusDisbanded, true
	default:
		return "", false
	}
}

// NormalizeRole parses a team role label.
func NormalizeRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleLeader:
		return RoleLeader, true
	case RoleMember:
		return RoleMember, true
	default:
		return "", false
	}
}

// NormalizeMemberStatus parses a membership status label.
func NormalizeMemberStatus(value string) (MemberStatus, bool) {
	switch MemberStatus(strings.ToLower(strings.TrimSpace(value))) {
	case MemberActive:
		return MemberActive, true
	case MemberPending:
		return MemberPending, true
	case MemberLeft:
		return MemberLeft, true
	default:
		return "", false
	}
}

// NormalizeSubmissionStatus parses the team project status. Blank input
// means no project.
func NormalizeSubmissionStatus(value string) (SubmissionStatus, bool) {
	switch SubmissionStatus(strings.ToLower(strings.TrimSpace(value))) {
	case SubmissionNone:
		return SubmissionNone, true
	case SubmissionDraft:
		return SubmissionDraft, true
	case SubmissionSubmitted:
		return SubmissionSubmitted, true
	case SubmissionDisqualified:
		return SubmissionDisqualified, true
	default:
		return "", false
	}
}

// UnmarshalText normalizes the team status label.
func (s *Status) UnmarshalText(text []byte) error {
	status, ok := NormalizeStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown team status %q", text)
	}
	*s = status
	return nil
}

// UnmarshalText normalizes the team role label.
func (r *Role) UnmarshalText(text []byte) error {
	role, ok := NormalizeRole(string(text))
	if !ok {
		return fmt.Errorf("unknown team role %q", text)
	}
	*r = role
	return nil
}

// UnmarshalText normalizes the membership status label.
func (s *MemberStatus) UnmarshalText(text []byte) error {
	status, ok := NormalizeMemberStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown member status %q", text)
	}
	*s = status
	return nil
}

// UnmarshalText normalizes the team project status label.
func (s *SubmissionStatus) UnmarshalText(text []byte) error {
	status, ok := NormalizeSubmissionStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown submission status %q", text)
	}
	*s = status
	return nil
}

// Disbanded reports whether the team has been disbanded.
func (t Team) Disbanded() bool {
	return t.Status == StatusDisbanded
}

// IsFull reports whether the team has no open slot.
func IsFull(t Team) bool {
	return t.CurrentSize >= t.MaxSize
}

// AvailableSlots returns the number of open slots, never negative.
func AvailableSlots(t Team) int {
	if slots := t.MaxSize - t.CurrentSize; slots > 0 {
		return slots
	}
	return 0
}

// ActiveMember returns the active membership of userID. Without a member
// list only LeaderID resolves.
func ActiveMember(t Team, userID string) (Member, bool) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Member{}, false
	}
	for _, member := range t.Members {
		if member.UserID == userID && member.Status == MemberActive {
			return member, true
		}
	}
	if userID == t.LeaderID {
		return Member{UserID: userID, Role: RoleLeader, Status: MemberActive}, true
	}
	return Member{}, false
}

// IsLeader reports whether userID leads the team.
func IsLeader(t Team, userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false
	}
	if userID == t.LeaderID {
		return true
	}
	member, ok := ActiveMember(t, userID)
	return ok && member.Role == RoleLeader
}

// otherActiveMembers counts active members other than the leader.
func otherActiveMembers(t Team) int {
	if len(t.Members) == 0 {
		if t.CurrentSize > 1 {
			return t.CurrentSize - 1
		}
		return 0
	}
	count := 0
	for _, member := range t.Members {
		if member.Status == MemberActive && member.UserID != t.LeaderID && member.Role != RoleLeader {
			count++
		}
	}
	return count
}

func activeLeaders(t Team) int {
	if len(t.Members) == 0 {
		if t.LeaderID != "" {
			return 1
		}
		return 0
	}
	count := 0
	for _, member := range t.Members {
		if member.Status == MemberActive && member.Role == RoleLeader {
			count++
		}
	}
	return count
}
