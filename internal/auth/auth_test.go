package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"income-tax-tracker/internal/storage"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func setupService(t *testing.T) *Service {
	return NewService(setupTestDB(t), "test-secret", time.Hour)
}

func TestRegisterUser(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "testuser", "password123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "password123", user.PasswordHash)

	_, err = s.Register(ctx, "testuser", "password123")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestLogin(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "authuser", "secret")
	require.NoError(t, err)

	token, err := s.Login(ctx, "authuser", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = s.Login(ctx, "authuser", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "wronguser", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "tokenuser", "pass")
	require.NoError(t, err)
	token, err := s.Login(ctx, "tokenuser", "pass")
	require.NoError(t, err)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.True(t, claims.ExpiresAt.Time.After(time.Now()))

	other := NewService(setupTestDB(t), "another-secret", time.Hour)
	_, err = other.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ParseToken("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "old", "pass")
	require.NoError(t, err)
	token, err := s.Login(ctx, "old", "pass")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHandlers_RegisterAndLogin(t *testing.T) {
	s := setupService(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewBufferString(`{"login":"u","password":"p"}`))
	w := httptest.NewRecorder()
	RegisterHandler(s)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewBufferString(`{"login":"u","password":"p"}`))
	w = httptest.NewRecorder()
	RegisterHandler(s)(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewBufferString(`{"login":"","password":"p"}`))
	w = httptest.NewRecorder()
	RegisterHandler(s)(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString(`{"login":"u","password":"p"}`))
	w = httptest.NewRecorder()
	LoginHandler(s)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString(`{"login":"u","password":"x"}`))
	w = httptest.NewRecorder()
	LoginHandler(s)(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	user, err := s.Register(ctx, "mw", "pass")
	require.NoError(t, err)
	token, err := s.Login(ctx, "mw", "pass")
	require.NoError(t, err)

	var gotOwner string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner, _ = OwnerFromContext(r.Context())
	})

	testTable := []struct {
		name   string
		header string
		cookie string
		status int
		owner  string
	}{
		{name: "bearer", header: "Bearer " + token, status: http.StatusOK, owner: "1"},
		{name: "cookie", cookie: token, status: http.StatusOK, owner: "1"},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "bad format", header: "Token " + token, status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized},
	}
	require.Equal(t, int64(1), user.ID)

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			gotOwner = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			if testCase.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: testCase.cookie})
			}
			w := httptest.NewRecorder()
			JWTMiddleware(s, next).ServeHTTP(w, req)
			require.Equal(t, testCase.status, w.Code)
			require.Equal(t, testCase.owner, gotOwner)
		})
	}
}

func TestSessionMiddleware_AnonymousPassesThrough(t *testing.T) {
	s := setupService(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := OwnerFromContext(r.Context())
		require.False(t, ok)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	SessionMiddleware(s, next).ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, called)
}

func TestStaticOwner(t *testing.T) {
	var gotOwner string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner, _ = OwnerFromContext(r.Context())
	})
	StaticOwner("local", next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "local", gotOwner)
}
