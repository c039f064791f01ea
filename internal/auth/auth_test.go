// AngelaMos | 2026
// auth_test.go

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/glowguard-api/internal/config"
	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/middleware"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*UserInfo
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*UserInfo)}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(_ context.Context, nu NewUser) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == nu.Email {
			return nil, ErrEmailExists
		}
		if u.Username == nu.Username {
			return nil, ErrUsernameExists
		}
	}
	u := &UserInfo{
		ID:           uuid.New().String(),
		Email:        nu.Email,
		Username:     nu.Username,
		FullName:     nu.FullName,
		PasswordHash: nu.PasswordHash,
		Age:          nu.Age,
		SkinType:     nu.SkinType,
		IsActive:     true,
		CreatedAt:    core.Now(),
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) deactivate(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].IsActive = false
}

func (f *fakeUsers) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-with-enough-entropy-0123456789",
		Algorithm:         "HS256",
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "glowguard-test",
		Audience:          "glowguard-test-clients",
	}
}

func newTestService(t *testing.T) (*Service, *fakeUsers) {
	t.Helper()

	jwtManager, err := NewJWTManager(testJWTConfig())
	require.NoError(t, err)

	users := newFakeUsers()
	return NewService(jwtManager, users, NewRevocationStore(nil)), users
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Email:    "User@Example.com",
		Username: "alice",
		Password: "Secret123",
		FullName: "Alice Example",
	}
}

func TestNewJWTManagerRejectsBadConfig(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	cfg.Secret = ""
	_, err := NewJWTManager(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.Algorithm = "RS256"
	_, err = NewJWTManager(cfg)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "hs384", "HS512"} {
		cfg := testJWTConfig()
		cfg.Algorithm = alg
		m, err := NewJWTManager(cfg)
		require.NoError(t, err, alg)

		issued, err := m.CreateAccessToken("user-1")
		require.NoError(t, err, alg)
		assert.NotEmpty(t, issued.TokenID)

		claims, err := m.ParseAccessToken(issued.Token)
		require.NoError(t, err, alg)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, issued.TokenID, claims.TokenID)
		assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt, time.Second)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager(testJWTConfig())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-completely-different-secret-9876543210"
	other, err := NewJWTManager(otherCfg)
	require.NoError(t, err)

	foreign, err := other.CreateAccessToken("user-1")
	require.NoError(t, err)

	audCfg := testJWTConfig()
	audCfg.Audience = "someone-else"
	wrongAud, err := NewJWTManager(audCfg)
	require.NoError(t, err)

	misaddressed, err := wrongAud.CreateAccessToken("user-1")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.jwt",
		"wrong key":      foreign.Token,
		"wrong audience": misaddressed.Token,
	} {
		_, err := m.ParseAccessToken(token)
		assert.ErrorIs(t, err, core.ErrTokenInvalid, name)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	cfg.AccessTokenExpire = -time.Minute
	m, err := NewJWTManager(cfg)
	require.NoError(t, err)

	issued, err := m.CreateAccessToken("user-1")
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(issued.Token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestIsTokenExpiredError(t *testing.T) {
	t.Parallel()

	assert.True(t, isTokenExpiredError(errors.New(`"exp" not satisfied`)))
	assert.False(t, isTokenExpiredError(errors.New(`"iss" not satisfied`)))
	assert.False(t, isTokenExpiredError(nil))
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.True(t, user.IsActive)

	tokens, err := svc.Login(ctx, LoginRequest{
		Email:    "USER@example.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.Equal(t, 900, tokens.ExpiresIn)
	assert.Equal(t, user.ID, tokens.User.ID)

	claims, err := svc.VerifyAccessToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, ErrEmailExists)

	req := validRegistration()
	req.Email = "other@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "Secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	users.deactivate(user.ID)
	_, err = svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "Secret123"})
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	tokens, err := svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "Secret123"})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(ctx, tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.VerifyAccessToken(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifyRejectsInactiveOrDeletedUser(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	tokens, err := svc.Login(ctx, LoginRequest{Email: "user@example.com", Password: "Secret123"})
	require.NoError(t, err)

	users.deactivate(user.ID)
	_, err = svc.VerifyAccessToken(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	users.remove(user.ID)
	_, err = svc.VerifyAccessToken(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestMemoryRevocationsIgnoreExpired(t *testing.T) {
	t.Parallel()

	store := NewRevocationStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "past", time.Now().Add(-time.Minute)))
	revoked, err := store.IsRevoked(ctx, "past")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "live", time.Now().Add(time.Minute)))
	revoked, err = store.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func newTestRouter(svc *Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(svc))
	return r
}

func doJSON(
	t *testing.T,
	h http.Handler,
	method, path, token string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerFlow(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	h := newTestRouter(svc)

	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", validRegistration())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/auth/register", "", validRegistration())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")

	rec = doJSON(t, h, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "user@example.com",
		Password: "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "user@example.com",
		Password: "Secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Data TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	token := login.Data.AccessToken
	require.NotEmpty(t, token)

	rec = doJSON(t, h, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = doJSON(t, h, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
}

func TestHandlerValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	h := newTestRouter(svc)

	req := validRegistration()
	req.Username = "a!"
	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = validRegistration()
	bad := "greasy"
	req.SkinType = &bad
	rec = doJSON(t, h, http.MethodPost, "/auth/register", "", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	rec = doJSON(t, h, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerInactiveLogin(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	h := newTestRouter(svc)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	users.deactivate(user.ID)

	rec := doJSON(t, h, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "user@example.com",
		Password: "Secret123",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
