package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/talent-marketplace/internal/api/dto"
	"github.com/spec-kit/talent-marketplace/internal/domain"
	"github.com/spec-kit/talent-marketplace/internal/service"
	apperrors "github.com/spec-kit/talent-marketplace/pkg/util/errorutil"
)

// UsersHandler exposes auth and profile endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		ChannelInfo: req.ChannelInfo,
		Expertise:   req.Expertise,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ChangePassword handles POST /auth/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("currentPassword and newPassword required", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *UsersHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	token, err := h.auth.RequestPasswordReset(c.Context(), req.Email)
	if err != nil {
		return err
	}
	// returned directly; a mail integration would deliver this out of band
	return c.JSON(fiber.Map{"data": fiber.Map{
		"token":     token.Token,
		"expiresAt": token.ExpiresAt,
	}})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *UsersHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.ResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and newPassword required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

// GetMe handles GET /users/me.
func (h *UsersHandler) GetMe(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

// UpdateMe handles PUT /users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.UpdateProfile(c.Context(), principal.User.ID, service.ProfileUpdateInput{
		Name:        req.Name,
		Bio:         req.Bio,
		Skills:      req.Skills,
		Location:    req.Location,
		Phone:       req.Phone,
		SocialLinks: req.SocialLinks,
		IsAvailable: req.IsAvailable,
		ChannelInfo: req.ChannelInfo,
		Expertise:   req.Expertise,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteMe handles DELETE /users/me.
func (h *UsersHandler) DeleteMe(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteAccount(c.Context(), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// GetUser handles GET /users/:id (public profile).
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": publicUserResponse(user)})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		Bio:           user.Bio,
		Skills:        user.Skills,
		Location:      user.Location,
		Phone:         user.Phone,
		SocialLinks:   user.SocialLinks,
		Rating:        user.Rating,
		IsVerified:    user.IsVerified,
		IsAvailable:   user.IsAvailable,
		CompletedJobs: user.CompletedJobs,
		ChannelInfo:   user.ChannelInfo,
		Expertise:     user.Expertise,
		CreatedAt:     user.CreatedAt,
	}
}

func publicUserResponse(user *domain.User) dto.PublicUserResponse {
	return dto.PublicUserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Role:          user.Role,
		Bio:           user.Bio,
		Skills:        user.Skills,
		Location:      user.Location,
		Rating:        user.Rating,
		IsVerified:    user.IsVerified,
		IsAvailable:   user.IsAvailable,
		CompletedJobs: user.CompletedJobs,
		ChannelInfo:   user.ChannelInfo,
		Expertise:     user.Expertise,
	}
}
