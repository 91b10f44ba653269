package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/talent-marketplace/internal/config"
	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/repository"
)

type fakeResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = token.Token
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[id]
	if !ok || stored.UsedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	stored.UsedAt = &now
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeResetRepo) {
	users := newFakeUserRepo()
	resets := newFakeResetRepo()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              4,
	}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, PasswordResetRepo: resets}), users, resets
}

func creatorInput() RegisterInput {
	return RegisterInput{
		Name:     "Alex",
		Email:    "Alex@Example.com",
		Password: "hunter22",
		Role:     domain.RoleCreator,
		ChannelInfo: &domain.ChannelInfo{
			Name:        "alexplays",
			Subscribers: 12000,
			Type:        "gaming",
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, token, _, err := svc.Register(context.Background(), creatorInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alex@example.com" {
		t.Errorf("email not lowercased: %s", user.Email)
	}
	if token == "" {
		t.Error("expected a token")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleCreator {
		t.Errorf("unexpected claims: %+v", claims)
	}

	// login is case-insensitive on email
	loggedIn, _, _, err := svc.Login(context.Background(), "ALEX@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Error("login returned a different user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, _, _, err := svc.Register(context.Background(), creatorInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, err := svc.Register(context.Background(), creatorInput())
	if code := errCode(t, err); code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", code)
	}
}

func TestRegisterProfileMustMatchRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	input := creatorInput()
	input.Expertise = &domain.Expertise{Categories: []domain.JobCategory{domain.CategoryVideoEditing}}
	_, _, _, err := svc.Register(context.Background(), input)
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED for creator with expertise, got %s", code)
	}

	expert := RegisterInput{
		Name:        "Sam",
		Email:       "sam@example.com",
		Password:    "hunter22",
		Role:        domain.RoleExpert,
		ChannelInfo: &domain.ChannelInfo{Name: "nope"},
	}
	_, _, _, err = svc.Register(context.Background(), expert)
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED for expert with channel info, got %s", code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, _, _, err := svc.Register(context.Background(), creatorInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, err := svc.Login(context.Background(), "alex@example.com", "wrong")
	if code := errCode(t, err); code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	if code := errCode(t, err); code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED for unknown email, got %s", code)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	user, _, _, err := svc.Register(context.Background(), creatorInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass99"); errCode(t, err) != "UNAUTHORIZED" {
		t.Fatal("expected UNAUTHORIZED with wrong current password")
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "hunter22", "newpass99"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "alex@example.com", "newpass99"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "alex@example.com", "hunter22"); err == nil {
		t.Error("old password still accepted")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, _, _, err := svc.Register(context.Background(), creatorInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.RequestPasswordReset(context.Background(), "alex@example.com")
	if err != nil {
		t.Fatalf("request reset: %v", err)
	}

	if err := svc.ConfirmPasswordReset(context.Background(), token.Token, "resetpass1"); err != nil {
		t.Fatalf("confirm reset: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "alex@example.com", "resetpass1"); err != nil {
		t.Fatalf("login after reset: %v", err)
	}

	// single use
	err = svc.ConfirmPasswordReset(context.Background(), token.Token, "another")
	if code := errCode(t, err); code != "INVALID_OPERATION" {
		t.Fatalf("expected INVALID_OPERATION on reuse, got %s", code)
	}
}

func TestPasswordResetUnknownToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	err := svc.ConfirmPasswordReset(context.Background(), "bogus", "whatever")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}
