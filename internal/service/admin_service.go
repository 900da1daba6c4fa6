package service

import (
	"context"
	"strings"

	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/validation"
)

// AdminService backs the administrative command line.
type AdminService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewAdminService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *AdminService {
	return &AdminService{groupRepo: groupRepo, userRepo: userRepo}
}

// CreateGroup validates and stores a new group.
func (s *AdminService) CreateGroup(ctx context.Context, title, slug, description string) (*models.Group, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)

	if err := validation.ValidateGroupTitle(title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateGroupSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group := &models.Group{Title: title, Slug: slug, Description: strings.TrimSpace(description)}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *AdminService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

// DeleteGroup removes the group by slug. Its posts stay, ungrouped.
func (s *AdminService) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, group.ID)
}

// DeleteUser removes the user by username together with their posts.
func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}
