package domain

import "time"

// Role enumerates account roles. The role is fixed at registration.
type Role string

const (
	RoleCreator Role = "creator"
	RoleExpert  Role = "expert"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	return r == RoleCreator || r == RoleExpert
}

// ChannelInfo describes a creator's channel. Present only when Role is creator.
type ChannelInfo struct {
	Name        string `json:"name"`
	Subscribers int64  `json:"subscribers"`
	Type        string `json:"type"`
}

// Expertise describes an expert's skill profile. Present only when Role is expert.
type Expertise struct {
	Categories        []JobCategory `json:"categories"`
	YearsOfExperience int           `json:"years_of_experience"`
	PortfolioURL      string        `json:"portfolio_url"`
}

// Rating aggregates review scores for a user.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// User is the account record. Exactly one of ChannelInfo or Expertise is
// populated, matching Role. Email is stored lowercase; PasswordHash never
// leaves the repository layer outward.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	Bio           string
	Skills        []string
	Location      string
	Phone         string
	SocialLinks   map[string]string
	Rating        Rating
	IsVerified    bool
	IsAvailable   bool
	CompletedJobs int
	ChannelInfo   *ChannelInfo
	Expertise     *Expertise
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfileMatchesRole reports whether the role-conditional sub-object is
// consistent with the user's role.
func (u *User) ProfileMatchesRole() bool {
	switch u.Role {
	case RoleCreator:
		return u.Expertise == nil
	case RoleExpert:
		return u.ChannelInfo == nil
	}
	return false
}
