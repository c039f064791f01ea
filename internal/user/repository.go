// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/glowguard-api/internal/auth"
	"github.com/carterperez-dev/glowguard-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	ImagePaths(ctx context.Context, id string) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, email, username, password_hash, full_name, age, skin_type,
	is_active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	now := core.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, username, password_hash, full_name, age,
		                   skin_type, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Age,
		user.SkinType,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", duplicateField(err))
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// duplicateField names the violated unique column. Both drivers include the
// column (sqlite) or constraint (postgres) name in the message.
func duplicateField(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "email"):
		return auth.ErrEmailExists
	case strings.Contains(msg, "username"):
		return auth.ErrUsernameExists
	default:
		return core.ErrDuplicateKey
	}
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"

	var user User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"

	var user User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(query), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	user.UpdatedAt = core.Now()

	query := `
		UPDATE users
		SET full_name = ?, age = ?, skin_type = ?, is_active = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.FullName,
		user.Age,
		user.SkinType,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return expectAffected(result, "update user")
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		passwordHash,
		core.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return expectAffected(result, "update password")
}

// Delete removes the user row. Predictions and their recommendations go with
// it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		r.db.Rebind("DELETE FROM users WHERE id = ?"),
		id,
	)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return expectAffected(result, "delete user")
}

// ImagePaths lists the stored upload paths of the user's predictions.
func (r *repository) ImagePaths(ctx context.Context, id string) ([]string, error) {
	var paths []string
	err := r.db.SelectContext(
		ctx,
		&paths,
		r.db.Rebind("SELECT image_path FROM predictions WHERE user_id = ?"),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list user images: %w", err)
	}

	return paths, nil
}

func expectAffected(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
