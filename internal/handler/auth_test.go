package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/auth"
	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestHandleRegister(t *testing.T) {
	authSvc := &mockAuthService{
		registerFunc: func(ctx context.Context, name, email, password string) (string, *model.User, error) {
			assert.Equal(t, "Ada", name)
			assert.Equal(t, "ada@example.com", email)
			assert.Equal(t, "secret123", password)
			return "issued-token", &model.User{ID: "user-2", Name: name, Email: email}, nil
		},
	}
	router, _, _ := newTestServer(t, &mockLinkService{}, authSvc)

	body := `{"name":"Ada","email":"ada@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"signed up successfully"`)
	assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)
	assert.NotContains(t, rec.Body.String(), "secret123")

	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "issued-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)
}

func TestHandleRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing name",
			body: `{"email":"ada@example.com","password":"secret123"}`,
		},
		{
			name: "missing email",
			body: `{"name":"Ada","password":"secret123"}`,
		},
		{
			name: "missing password",
			body: `{"name":"Ada","email":"ada@example.com"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := &mockAuthService{
				registerFunc: func(ctx context.Context, name, email, password string) (string, *model.User, error) {
					t.Fatal("register must not be called for incomplete input")
					return "", nil, nil
				},
			}
			router, _, _ := newTestServer(t, &mockLinkService{}, authSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"success":false,"message":"name, email and password are required"}`, rec.Body.String())
			assert.Nil(t, sessionCookieFrom(t, rec))
		})
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	authSvc := &mockAuthService{
		registerFunc: func(ctx context.Context, name, email, password string) (string, *model.User, error) {
			return "", nil, apperr.Conflict("user already exists")
		},
	}
	router, _, _ := newTestServer(t, &mockLinkService{}, authSvc)

	body := `{"name":"Ada","email":"ada@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"user already exists"}`, rec.Body.String())
	assert.Nil(t, sessionCookieFrom(t, rec))
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginFunc  func(ctx context.Context, email, password string) (string, *model.User, error)
		wantStatus int
		wantCookie bool
	}{
		{
			name: "valid credentials",
			body: `{"email":"ada@example.com","password":"secret123"}`,
			loginFunc: func(ctx context.Context, email, password string) (string, *model.User, error) {
				return "issued-token", &model.User{ID: "user-1", Email: email}, nil
			},
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name: "bad credentials",
			body: `{"email":"ada@example.com","password":"wrong"}`,
			loginFunc: func(ctx context.Context, email, password string) (string, *model.User, error) {
				return "", nil, apperr.Unauthorized("invalid credentials")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := &mockAuthService{loginFunc: tt.loginFunc}
			router, _, _ := newTestServer(t, &mockLinkService{}, authSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			cookie := sessionCookieFrom(t, rec)
			if tt.wantCookie {
				require.NotNil(t, cookie)
				assert.Equal(t, "issued-token", cookie.Value)
				assert.Contains(t, rec.Body.String(), `"message":"signed in successfully"`)
			} else {
				assert.Nil(t, cookie)
			}
		})
	}
}

func TestHandleLogout(t *testing.T) {
	tests := []struct {
		name       string
		logoutErr  error
		wantStatus int
		wantClear  bool
	}{
		{
			name:       "correct password clears the session",
			wantStatus: http.StatusOK,
			wantClear:  true,
		},
		{
			name:       "wrong password keeps the session",
			logoutErr:  apperr.Unauthorized("incorrect password"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := &mockAuthService{
				logoutFunc: func(ctx context.Context, email, password string) error {
					assert.Equal(t, "ada@example.com", email)
					assert.Equal(t, "secret123", password)
					return tt.logoutErr
				},
			}
			router, cookie, _ := newTestServer(t, &mockLinkService{}, authSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(`{"password":"secret123"}`))
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			cleared := sessionCookieFrom(t, rec)
			if tt.wantClear {
				require.NotNil(t, cleared)
				assert.Empty(t, cleared.Value)
				assert.Equal(t, -1, cleared.MaxAge)
				assert.JSONEq(t, `{"success":true,"message":"Logout successful"}`, rec.Body.String())
			} else {
				assert.Nil(t, cleared)
			}
		})
	}
}

func TestHandleLogout_RequiresSession(t *testing.T) {
	router, _, _ := newTestServer(t, &mockLinkService{}, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(`{"password":"secret123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleCurrentUser(t *testing.T) {
	router, cookie, user := newTestServer(t, &mockLinkService{}, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"`+user.ID+`"`)
	assert.Contains(t, rec.Body.String(), `"email":"`+user.Email+`"`)
}
