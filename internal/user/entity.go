// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Age          *int      `db:"age"`
	SkinType     *string   `db:"skin_type"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	SkinOily        = "oily"
	SkinDry         = "dry"
	SkinCombination = "combination"
	SkinNormal      = "normal"
	SkinSensitive   = "sensitive"
)
