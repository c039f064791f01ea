// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Email    string  `json:"email"     validate:"required,email,max=255"`
	Username string  `json:"username"  validate:"required,min=3,max=50,alphanum"`
	Password string  `json:"password"  validate:"required,min=8,max=128"`
	FullName string  `json:"full_name" validate:"max=100"`
	Age      *int    `json:"age"       validate:"omitempty,min=1,max=120"`
	SkinType *string `json:"skin_type" validate:"omitempty,oneof=oily dry combination normal sensitive"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Age       *int      `json:"age"`
	SkinType  *string   `json:"skin_type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Age:       u.Age,
		SkinType:  u.SkinType,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
