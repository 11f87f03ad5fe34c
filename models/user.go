package models

import "time"

// User roles
const (
	RoleCustomer = "customer"
	RolePartner  = "partner"
)

// User - identity record (matches the users table)
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"` // customer, partner
	Photo        string    `json:"photo,omitempty"`
	Language     string    `json:"language,omitempty"` // en, hi
	PasswordHash string    `json:"-"`                  // never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsValidRole - only customer and partner accounts exist
func IsValidRole(role string) bool {
	return role == RoleCustomer || role == RolePartner
}

// SignupRequest - registration payload
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Phone    string `json:"phone" validate:"required,phone_in"`
	Role     string `json:"role" validate:"required,oneof=customer partner"`
}

// LoginRequest - login payload; role selects the login surface
// (customer app vs partner app) and must match the stored role
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=customer partner"`
}

// ForgotPasswordRequest - reset link request
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - token-based password replacement
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,strong_password"`
}

// UpdateProfileRequest - partial profile update; nil fields are untouched
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,phone_in"`
	Photo    *string `json:"photo,omitempty" validate:"omitempty,max=500"`
	Language *string `json:"language,omitempty" validate:"omitempty,oneof=en hi"`
}

// AuthPayload - login/signup response data
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
