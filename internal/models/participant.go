package models

import "fmt"

// ParticipantKind discriminates the two participant variants.
type ParticipantKind string

const (
	// KindUser identifies a registered user by user ID.
	KindUser ParticipantKind = "user"

	// KindMember identifies a virtual group member by group-member ID.
	KindMember ParticipantKind = "member"
)

// Participant is a tagged reference to one split target: either a
// registered user or a virtual group member. The zero value is invalid;
// construct with UserParticipant or MemberParticipant so that exactly one
// identity is ever set.
type Participant struct {
	kind ParticipantKind
	id   string
}

// UserParticipant references a registered user by ID.
func UserParticipant(userID string) Participant {
	return Participant{kind: KindUser, id: userID}
}

// MemberParticipant references a virtual group member by group-member ID.
func MemberParticipant(memberID string) Participant {
	return Participant{kind: KindMember, id: memberID}
}

// Kind returns the participant variant.
func (p Participant) Kind() ParticipantKind { return p.kind }

// UserID returns the user ID and true when the participant is a
// registered user.
func (p Participant) UserID() (string, bool) {
	if p.kind == KindUser {
		return p.id, true
	}
	return "", false
}

// MemberID returns the group-member ID and true when the participant is a
// virtual member.
func (p Participant) MemberID() (string, bool) {
	if p.kind == KindMember {
		return p.id, true
	}
	return "", false
}

// IsZero reports whether the participant was never constructed.
func (p Participant) IsZero() bool { return p.kind == "" || p.id == "" }

// Key returns a string unique per identity, usable for deduplication.
func (p Participant) Key() string { return string(p.kind) + ":" + p.id }

// String implements fmt.Stringer for logging.
func (p Participant) String() string { return fmt.Sprintf("%s(%s)", p.kind, p.id) }
