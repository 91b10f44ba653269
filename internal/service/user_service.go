package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/repository"
	apperrors "github.com/spec-kit/talent-marketplace/pkg/util/errorutil"
)

// UserService handles profile reads and edits. The role is immutable after
// registration, so profile updates may only touch the sub-object matching it.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ProfileUpdateInput carries editable profile fields. Nil fields are left
// untouched.
type ProfileUpdateInput struct {
	Name        *string
	Bio         *string
	Skills      []string
	Location    *string
	Phone       *string
	SocialLinks map[string]string
	IsAvailable *bool
	ChannelInfo *domain.ChannelInfo
	Expertise   *domain.Expertise
}

// GetProfile returns the user by id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateProfile merges the edits, rejecting a sub-object that does not match
// the account's role.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.ChannelInfo != nil && user.Role != domain.RoleCreator {
		return nil, apperrors.NewValidationError("channel info is only valid for creators", nil)
	}
	if input.Expertise != nil && user.Role != domain.RoleExpert {
		return nil, apperrors.NewValidationError("expertise is only valid for experts", nil)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.SocialLinks != nil {
		user.SocialLinks = input.SocialLinks
	}
	if input.IsAvailable != nil {
		user.IsAvailable = *input.IsAvailable
	}
	if input.ChannelInfo != nil {
		user.ChannelInfo = input.ChannelInfo
	}
	if input.Expertise != nil {
		user.Expertise = input.Expertise
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteAccount removes the account record. Owned jobs and applications
// cascade at the store; an account still assigned to in-progress work cannot
// be deleted.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		if errors.Is(err, repository.ErrAccountReferenced) {
			return apperrors.NewConflict("account is assigned to active work", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}
