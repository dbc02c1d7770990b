package user

import "time"

// NewPrincipal carries the identity half of an employee onboarding or a seed.
type NewPrincipal struct {
	Name         string
	Email        string
	Password     string
	Role         string
	ProfileImage string
}

// ProfilePatch merges into an existing principal; empty fields keep the
// stored value.
type ProfilePatch struct {
	Name         string
	Email        string
	Role         string
	ProfileImage string
	Password     string
}

type UpdateProfileRequest struct {
	Name         string `json:"name" binding:"omitempty,max=255"`
	Email        string `json:"email" binding:"omitempty,email"`
	ProfileImage string `json:"profileImage" binding:"omitempty,max=512"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profileImage,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ToResponse(u *User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
