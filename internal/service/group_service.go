package service

import (
	"context"
	"log/slog"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/models"
	"github.com/Hariksh/Expense-tracker/internal/storage"
)

// MemberEntry is one requested group member: a registered user by ID, or a
// virtual member by bare name. An entry with neither is invalid.
type MemberEntry struct {
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
}

// GroupService manages groups and resolves member entries to member slots.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create makes a new group owned by the requester. The requester is always
// added as a real member, whether or not the entries name them.
func (s *GroupService) Create(ctx context.Context, requesterID, name string, entries []MemberEntry) (*models.Group, error) {
	if name == "" {
		return nil, apperr.Validationf("name is required")
	}

	members, err := s.resolveEntries(ctx, entries)
	if err != nil {
		return nil, err
	}
	if !hasRealMember(members, requesterID) {
		members = append(members, models.GroupMember{UserID: requesterID})
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: requesterID,
	}
	if err := s.store.CreateGroup(ctx, group, members); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, apperr.Transactionf("create group: %v", err)
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))
	return group, nil
}

// Get retrieves a group with members and expenses. Visible to the creator
// and real members only.
func (s *GroupService) Get(ctx context.Context, requesterID, groupID string) (*models.Group, []*models.Expense, error) {
	group, err := s.load(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if !isGroupParticipant(group, requesterID) {
		return nil, nil, apperr.Forbiddenf("you are not a member of this group")
	}

	expenses, err := s.store.ListExpensesForGroup(ctx, groupID)
	if err != nil {
		return nil, nil, apperr.Transactionf("list group expenses: %v", err)
	}
	return group, expenses, nil
}

// List returns the groups the user created or belongs to, newest first.
func (s *GroupService) List(ctx context.Context, userID string) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Transactionf("list groups: %v", err)
	}
	return groups, nil
}

// AddMembers resolves the entries and inserts the resulting member slots.
// Only the creator may add members. Returns the group's full member list
// after the insert.
func (s *GroupService) AddMembers(ctx context.Context, requesterID, groupID string, entries []MemberEntry) ([]models.GroupMember, error) {
	group, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != requesterID {
		return nil, apperr.Forbiddenf("only the group creator may add members")
	}
	if len(entries) == 0 {
		return nil, apperr.Validationf("at least one member entry is required")
	}

	members, err := s.resolveEntries(ctx, entries)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("AddGroupMembers failed", "group_id", groupID, "error", err)
		return nil, apperr.Transactionf("add group members: %v", err)
	}

	current, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, apperr.Transactionf("list group members: %v", err)
	}
	slog.Info("Group members added", "group_id", groupID, "total", len(current))
	return current, nil
}

// Members returns the group's member slots. Visible to the creator and
// real members only.
func (s *GroupService) Members(ctx context.Context, requesterID, groupID string) ([]models.GroupMember, error) {
	group, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !isGroupParticipant(group, requesterID) {
		return nil, apperr.Forbiddenf("you are not a member of this group")
	}
	return group.Members, nil
}

// Delete removes the group and cascades to its member slots, expenses and
// splits. Only the creator may delete, regardless of who paid the group's
// expenses.
func (s *GroupService) Delete(ctx context.Context, requesterID, groupID string) error {
	group, err := s.load(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy != requesterID {
		return apperr.Forbiddenf("only the group creator may delete the group")
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return apperr.Transactionf("delete group: %v", err)
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

func (s *GroupService) load(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Transactionf("get group: %v", err)
	}
	if group == nil {
		return nil, apperr.NotFoundf("group %s", groupID)
	}
	return group, nil
}

// resolveEntries maps requested entries to member slots. Entries naming the
// same user collapse to one (the first entry wins); virtual names are never
// deduplicated, so two virtual members may share a display name.
func (s *GroupService) resolveEntries(ctx context.Context, entries []MemberEntry) ([]models.GroupMember, error) {
	seen := make(map[string]bool, len(entries))
	var members []models.GroupMember
	for i, e := range entries {
		switch {
		case e.UserID != "":
			if seen[e.UserID] {
				continue
			}
			seen[e.UserID] = true
			user, err := s.store.GetUserByID(ctx, e.UserID)
			if err != nil {
				return nil, apperr.Transactionf("get user: %v", err)
			}
			if user == nil {
				return nil, apperr.NotFoundf("user %s", e.UserID)
			}
			members = append(members, models.GroupMember{UserID: e.UserID})
		case e.Name != "":
			members = append(members, models.GroupMember{Name: e.Name})
		default:
			return nil, apperr.Validationf("member entry %d must have a userId or a name", i)
		}
	}
	return members, nil
}

func hasRealMember(members []models.GroupMember, userID string) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
