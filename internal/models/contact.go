package models

// Contact is a directed "users I can quickly add to a group" relation from
// OwnerID to ContactUserID, unique per pair. No reciprocal relation is
// implied.
type Contact struct {
	OwnerID       string `json:"ownerId"`
	ContactUserID string `json:"contactUserId"`

	// CreatedAt is the Unix timestamp when the contact was added.
	CreatedAt int64 `json:"createdAt"`
}
