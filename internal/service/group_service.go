package service

import (
	"context"

	"github.com/openclass/courseware-backend/internal/model"
	"github.com/rs/zerolog"
)

// GroupStore is the persistence surface the group service needs.
// *repository.GroupRepository satisfies it.
type GroupStore interface {
	List(ctx context.Context) ([]model.Group, error)
	Ensure(ctx context.Context, name, description string) error
}

// GroupService handles group listing and seeding.
type GroupService struct {
	groups GroupStore
	log    zerolog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups GroupStore, log zerolog.Logger) *GroupService {
	return &GroupService{groups: groups, log: log}
}

// List retrieves all groups.
func (s *GroupService) List(ctx context.Context) ([]model.Group, error) {
	return s.groups.List(ctx)
}

// Seed ensures the well-known groups exist. Create-if-absent per name, so
// running it on every startup never duplicates a group.
func (s *GroupService) Seed(ctx context.Context) error {
	for _, g := range model.SeedGroups {
		if err := s.groups.Ensure(ctx, g.Name, g.Description); err != nil {
			return err
		}
	}
	s.log.Info().Int("groups", len(model.SeedGroups)).Msg("Groups seeded")
	return nil
}
