package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

type stubAuthService struct {
	verifyFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Register(context.Context, string, string, string) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	return s.verifyFn(ctx, token)
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return nil
}

func TestCurrentUser_ValidToken(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		verifyFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != "tok123" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &domain.User{ID: "u1", Username: "alice"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CurrentUser(auth)(func(c echo.Context) error {
		if c.Get(KeyUserID) != "u1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(KeyUsername) != "alice" {
			t.Fatalf("username not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCurrentUser_MissingHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		verifyFn: func(context.Context, string) (*domain.User, error) {
			t.Fatalf("verify should not be called without a header")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CurrentUser(auth)(func(c echo.Context) error {
		if id, _ := c.Get(KeyUserID).(string); id != "" {
			t.Fatalf("anonymous request should carry no user")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCurrentUser_InvalidTokenIsAnonymous(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		verifyFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired-or-revoked")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CurrentUser(auth)(func(c echo.Context) error {
		if id, _ := c.Get(KeyUserID).(string); id != "" {
			t.Fatalf("invalid token should not attach a user")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestCurrentUser_NonBearerSchemeIgnored(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		verifyFn: func(context.Context, string) (*domain.User, error) {
			t.Fatalf("verify should not be called for non-bearer schemes")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CurrentUser(auth)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestRequireUser_RejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireUser()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if err == nil {
		t.Fatalf("expected error for anonymous request")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireUser_PassesAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(KeyUserID, "u1")

	called := false
	handler := RequireUser()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
