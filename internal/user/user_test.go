// AngelaMos | 2026
// user_test.go

package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/glowguard-api/internal/auth"
	"github.com/carterperez-dev/glowguard-api/internal/config"
	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/middleware"
	"github.com/carterperez-dev/glowguard-api/internal/testutil"
	"github.com/carterperez-dev/glowguard-api/internal/upload"
)

func newUser(t *testing.T, svc *Service, email, username string) *auth.UserInfo {
	t.Helper()

	u, err := svc.Create(context.Background(), auth.NewUser{
		Email:        email,
		Username:     username,
		PasswordHash: "hash",
		FullName:     "Test User",
	})
	require.NoError(t, err)
	return u
}

func TestCreateAndLookup(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	svc := NewService(NewRepository(db.DB), nil)
	ctx := context.Background()

	created := newUser(t, svc, "Mixed@Example.com", "mixed")
	assert.Equal(t, "mixed@example.com", created.Email)
	assert.True(t, created.IsActive)

	byEmail, err := svc.GetByEmail(ctx, "MIXED@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "mixed", byID.Username)
	assert.Nil(t, byID.Age)
	assert.Nil(t, byID.SkinType)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateDuplicateNamesField(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	svc := NewService(NewRepository(db.DB), nil)

	newUser(t, svc, "a@example.com", "alice")

	_, err := svc.Create(context.Background(), auth.NewUser{
		Email:        "a@example.com",
		Username:     "other",
		PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, auth.ErrEmailExists)

	_, err = svc.Create(context.Background(), auth.NewUser{
		Email:        "b@example.com",
		Username:     "alice",
		PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, auth.ErrUsernameExists)

	var count int
	require.NoError(t, db.DB.Get(&count, "SELECT COUNT(*) FROM users"))
	assert.Equal(t, 1, count)
}

func TestUpdateProfilePartial(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	svc := NewService(NewRepository(db.DB), nil)
	ctx := context.Background()
	u := newUser(t, svc, "p@example.com", "profile")

	age := 31
	skin := SkinCombination
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{
		Age:      &age,
		SkinType: &skin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Test User", updated.FullName)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 31, *updated.Age)

	name := "  Renamed  "
	updated, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FullName)
	require.NotNil(t, updated.SkinType)
	assert.Equal(t, SkinCombination, *updated.SkinType)

	_, err = svc.UpdateProfile(ctx, "", UpdateProfileRequest{})
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	svc := NewService(NewRepository(db.DB), nil)
	ctx := context.Background()
	u := newUser(t, svc, "pw@example.com", "pw")

	require.NoError(t, svc.UpdatePassword(ctx, u.ID, "new-hash"))
	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	assert.ErrorIs(t, svc.UpdatePassword(ctx, "missing", "x"), core.ErrNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	store, err := upload.NewStore(config.UploadConfig{
		Dir:               t.TempDir(),
		MaxBytes:          1 << 20,
		AllowedExtensions: []string{"jpg"},
		PublicPath:        "/uploads",
	})
	require.NoError(t, err)

	svc := NewService(NewRepository(db.DB), store)
	ctx := context.Background()
	u := newUser(t, svc, "gone@example.com", "gone")
	other := newUser(t, svc, "kept@example.com", "kept")

	insert := func(id, owner string) string {
		path, err := store.Save(ctx, "skin.jpg", bytes.NewReader(testutil.JPEG(t, 8, 8)))
		require.NoError(t, err)

		_, err = db.DB.Exec(db.DB.Rebind(`
			INSERT INTO predictions (id, user_id, image_path, disease_name, confidence, severity, created_at)
			VALUES (?, ?, ?, 'Acne', 0.9, 'severe', ?)`), id, owner, path, core.Now())
		require.NoError(t, err)
		return path
	}

	mine := insert("p1", u.ID)
	theirs := insert("p2", other.ID)

	_, err = db.DB.Exec(db.DB.Rebind(`
		INSERT INTO recommendations (id, prediction_id, category, content, position, created_at)
		VALUES ('r1', 'p1', 'remedies', 'Wash twice daily', 0, ?)`), core.Now())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, u.ID))

	var predictions, recommendations int
	require.NoError(t, db.DB.Get(&predictions, "SELECT COUNT(*) FROM predictions"))
	require.NoError(t, db.DB.Get(&recommendations, "SELECT COUNT(*) FROM recommendations"))
	assert.Equal(t, 1, predictions)
	assert.Zero(t, recommendations)

	assert.NoFileExists(t, mine)
	assert.FileExists(t, theirs)

	assert.ErrorIs(t, svc.DeleteAccount(ctx, u.ID), core.ErrNotFound)
}

type recordingRevoker struct {
	revoked []string
}

func (r *recordingRevoker) Logout(
	_ context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	r.revoked = append(r.revoked, claims.TokenID)
	return nil
}

func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID:  userID,
				TokenID: "jti-" + userID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestHandlerProfileAndDelete(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	svc := NewService(NewRepository(db.DB), nil)
	u := newUser(t, svc, "h@example.com", "handler")

	revoker := &recordingRevoker{}
	r := chi.NewRouter()
	NewHandler(svc, revoker).RegisterRoutes(r, asUser(u.ID))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/profile", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"handler"`)
	assert.NotContains(t, rec.Body.String(), "password")

	body, _ := json.Marshal(map[string]any{"skin_type": "oily", "age": 40})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/profile", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"skin_type":"oily"`)

	body, _ = json.Marshal(map[string]any{"skin_type": "scaly"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/profile", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/account", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"jti-" + u.ID}, revoker.revoked)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/profile", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
