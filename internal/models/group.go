package models

// Group is a named collection of members created by exactly one user.
// Deleting a group cascades to its member links and every expense (and
// split) recorded against it.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g. "Roommates").
	Name string `json:"name"`

	// CreatedBy is the ID of the user who created the group. Only the
	// creator may add members or delete the group.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`

	// Members holds the group's member slots when loaded.
	Members []GroupMember `json:"members,omitempty"`
}

// GroupMember is one participant slot inside a group. Exactly one of
// {UserID, Name} is populated:
//
//   - real member: UserID set, backed by a User account
//   - virtual member: Name set, no backing account
//
// Real members are unique per (group, user); two virtual members may share
// a display name.
type GroupMember struct {
	// ID is the unique identifier for the member slot (UUID format).
	ID string `json:"id"`

	// GroupID is the group this slot belongs to.
	GroupID string `json:"groupId"`

	// UserID is the backing user account, empty for virtual members.
	UserID string `json:"userId,omitempty"`

	// Name is the display name of a virtual member, empty for real
	// members (a real member's name lives on the User).
	Name string `json:"name,omitempty"`
}

// IsVirtual reports whether the member has no backing user account.
func (m GroupMember) IsVirtual() bool { return m.UserID == "" }

// Participant returns the split-target reference for this member slot:
// the user for real members, the member slot itself for virtual ones.
func (m GroupMember) Participant() Participant {
	if m.IsVirtual() {
		return MemberParticipant(m.ID)
	}
	return UserParticipant(m.UserID)
}
