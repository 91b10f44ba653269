package service

import (
	"context"
	"testing"

	"github.com/spec-kit/talent-marketplace/internal/domain"
)

func newUserFixture(t *testing.T, role domain.Role) (*UserService, *domain.User) {
	t.Helper()
	users := newFakeUserRepo()
	user := &domain.User{Name: "Alex", Email: "alex@example.com", Role: role, IsAvailable: true}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewUserService(users), user
}

func TestUpdateProfileMergesFields(t *testing.T) {
	svc, user := newUserFixture(t, domain.RoleExpert)

	bio := "Editor with 5 years of experience"
	available := false
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdateInput{
		Bio:         &bio,
		IsAvailable: &available,
		Skills:      []string{"premiere", "after-effects"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != bio || updated.IsAvailable || len(updated.Skills) != 2 {
		t.Errorf("fields not merged: %+v", updated)
	}
	if updated.Name != "Alex" {
		t.Error("untouched field changed")
	}
}

func TestUpdateProfileRoleConditional(t *testing.T) {
	creatorSvc, creator := newUserFixture(t, domain.RoleCreator)
	_, err := creatorSvc.UpdateProfile(context.Background(), creator.ID, ProfileUpdateInput{
		Expertise: &domain.Expertise{YearsOfExperience: 3},
	})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED for creator setting expertise, got %s", code)
	}

	expertSvc, expert := newUserFixture(t, domain.RoleExpert)
	_, err = expertSvc.UpdateProfile(context.Background(), expert.ID, ProfileUpdateInput{
		ChannelInfo: &domain.ChannelInfo{Name: "nope"},
	})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED for expert setting channel info, got %s", code)
	}

	updated, err := expertSvc.UpdateProfile(context.Background(), expert.ID, ProfileUpdateInput{
		Expertise: &domain.Expertise{
			Categories:        []domain.JobCategory{domain.CategoryVideoEditing},
			YearsOfExperience: 5,
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Expertise == nil || updated.Expertise.YearsOfExperience != 5 {
		t.Errorf("expertise not updated: %+v", updated.Expertise)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newUserFixture(t, domain.RoleCreator)
	_, err := svc.GetProfile(context.Background(), "missing")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, user := newUserFixture(t, domain.RoleCreator)
	if err := svc.DeleteAccount(context.Background(), user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := svc.DeleteAccount(context.Background(), user.ID)
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND on repeat delete, got %s", code)
	}
}
