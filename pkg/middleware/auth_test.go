package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTokenRepo struct {
	repository.TokenRepository
	tokens map[string]*entity.AuthToken
}

func (f *fakeTokenRepo) FindValid(_ context.Context, token string) (*entity.AuthToken, error) {
	return f.tokens[token], nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

type authFixture struct {
	chain http.Handler
	// caller observed by the innermost handler, nil when it never ran
	seen *utils.Caller
}

func newAuthFixture(role entity.Role, wrap ...func(http.Handler) http.Handler) (*authFixture, string) {
	userID := uuid.New()
	token := uuid.New().String()

	tokens := &fakeTokenRepo{tokens: map[string]*entity.AuthToken{
		token: {
			Token:     uuid.MustParse(token),
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{
		userID: {
			Base:  entity.Base{ID: userID},
			Email: "someone@example.com",
			Role:  role,
		},
	}}

	fx := &authFixture{}
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, _ := utils.GetCallerFromContext(r.Context())
		fx.seen = &caller
		w.WriteHeader(http.StatusOK)
	})

	for i := len(wrap) - 1; i >= 0; i-- {
		handler = wrap[i](handler)
	}
	fx.chain = Authenticate(tokens, users, zap.NewNop())(handler)

	return fx, token
}

func TestAuthenticateAnonymousPassthrough(t *testing.T) {
	fx, _ := newAuthFixture(entity.RoleUser)

	rec := httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fx.seen)
	assert.Equal(t, utils.CallerAnonymous, fx.seen.Role)
}

func TestAuthenticateResolvesCaller(t *testing.T) {
	fx, token := newAuthFixture(entity.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fx.seen)
	assert.Equal(t, utils.CallerUser, fx.seen.Role)
	assert.True(t, fx.seen.Authenticated())
}

func TestAuthenticateRejectsBadHeader(t *testing.T) {
	fx, token := newAuthFixture(entity.RoleUser)

	for _, header := range []string{"Basic abc", token, "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		fx.chain.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.Nil(t, fx.seen)
}

func TestAuthenticateRejectsUnknownToken(t *testing.T) {
	fx, _ := newAuthFixture(entity.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+uuid.New().String())
	rec := httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, fx.seen)
}

func TestRequireAuth(t *testing.T) {
	fx, token := newAuthFixture(entity.RoleUser, RequireAuth(zap.NewNop()))

	// Anonymous is rejected.
	rec := httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated user passes.
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	// Plain user gets 403, not 401.
	fx, token := newAuthFixture(entity.RoleUser, RequireAdmin(zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/movies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Anonymous gets 401.
	rec = httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/movies", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Admin passes.
	fx, token = newAuthFixture(entity.RoleAdmin, RequireAdmin(zap.NewNop()))
	req = httptest.NewRequest(http.MethodPost, "/api/admin/movies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	fx.chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
