// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Age      *int    `json:"age,omitempty"       validate:"omitempty,min=1,max=120"`
	SkinType *string `json:"skin_type,omitempty" validate:"omitempty,oneof=oily dry combination normal sensitive"`
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
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Age:       u.Age,
		SkinType:  u.SkinType,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
