package dto

import (
	"time"

	"github.com/spec-kit/talent-marketplace/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Password    string              `json:"password"`
	Role        domain.Role         `json:"role"`
	ChannelInfo *domain.ChannelInfo `json:"channelInfo"`
	Expertise   *domain.Expertise   `json:"expertise"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetRequestRequest payload.
type ResetRequestRequest struct {
	Email string `json:"email"`
}

// ResetConfirmRequest payload.
type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest payload; absent fields are left untouched. Role and
// email are immutable here.
type UpdateProfileRequest struct {
	Name        *string             `json:"name"`
	Bio         *string             `json:"bio"`
	Skills      []string            `json:"skills"`
	Location    *string             `json:"location"`
	Phone       *string             `json:"phone"`
	SocialLinks map[string]string   `json:"socialLinks"`
	IsAvailable *bool               `json:"isAvailable"`
	ChannelInfo *domain.ChannelInfo `json:"channelInfo"`
	Expertise   *domain.Expertise   `json:"expertise"`
}

// UserResponse is the outward account representation. The password hash is
// never serialized.
type UserResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Role          domain.Role         `json:"role"`
	Bio           string              `json:"bio"`
	Skills        []string            `json:"skills"`
	Location      string              `json:"location"`
	Phone         string              `json:"phone"`
	SocialLinks   map[string]string   `json:"socialLinks"`
	Rating        domain.Rating       `json:"rating"`
	IsVerified    bool                `json:"isVerified"`
	IsAvailable   bool                `json:"isAvailable"`
	CompletedJobs int                 `json:"completedJobs"`
	ChannelInfo   *domain.ChannelInfo `json:"channelInfo,omitempty"`
	Expertise     *domain.Expertise   `json:"expertise,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// PublicUserResponse hides contact details on public profile reads.
type PublicUserResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Role          domain.Role         `json:"role"`
	Bio           string              `json:"bio"`
	Skills        []string            `json:"skills"`
	Location      string              `json:"location"`
	Rating        domain.Rating       `json:"rating"`
	IsVerified    bool                `json:"isVerified"`
	IsAvailable   bool                `json:"isAvailable"`
	CompletedJobs int                 `json:"completedJobs"`
	ChannelInfo   *domain.ChannelInfo `json:"channelInfo,omitempty"`
	Expertise     *domain.Expertise   `json:"expertise,omitempty"`
}
