package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/tutorialhub/tutorial-platform/internal/api/handler"
	"github.com/tutorialhub/tutorial-platform/internal/api/middleware"
	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

type stubUserService struct {
	profileFn func(ctx context.Context, id string) (*domain.User, error)
	updateFn  func(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.User, error)
}

func (s *stubUserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.profileFn(ctx, id)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, update)
}

func TestUserHandler_Profile(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		profileFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.User{
				ID:           "u1",
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "$2a$12$secret",
				CreatedAt:    time.Now().UTC(),
				UpdatedAt:    time.Now().UTC(),
			}, nil
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/users/profile", "")
	c.Set(middleware.KeyUserID, "u1")
	render(e, c, h.Profile(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
	for _, key := range []string{"password", "password_hash"} {
		if _, leaked := resp[key]; leaked {
			t.Fatalf("%s leaked in profile response", key)
		}
	}
}

func TestUserHandler_Profile_Anonymous(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		profileFn: func(context.Context, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/users/profile", "")
	render(e, c, h.Profile(c))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_IgnoresPassword(t *testing.T) {
	e := newEcho()
	var gotUpdate ports.ProfileUpdate
	stub := &stubUserService{
		updateFn: func(_ context.Context, _ string, update ports.ProfileUpdate) (*domain.User, error) {
			gotUpdate = update
			return &domain.User{ID: "u1", Username: update.Username, Email: "alice@example.com"}, nil
		},
	}
	h := handler.NewUserHandler(stub)

	// A password field in the payload must be silently dropped.
	c, rec := doJSON(e, http.MethodPut, "/api/users/profile",
		`{"username":"alice2","password":"letmein"}`)
	c.Set(middleware.KeyUserID, "u1")
	render(e, c, h.UpdateProfile(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUpdate.Username != "alice2" {
		t.Fatalf("username not forwarded: %+v", gotUpdate)
	}
	if gotUpdate.Email != "" {
		t.Fatalf("email should be empty when omitted: %+v", gotUpdate)
	}
}

func TestUserHandler_UpdateProfile_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(context.Context, string, ports.ProfileUpdate) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := doJSON(e, http.MethodPut, "/api/users/profile", `{"email":"not-an-email"}`)
	c.Set(middleware.KeyUserID, "u1")
	render(e, c, h.UpdateProfile(c))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_Conflict(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(context.Context, string, ports.ProfileUpdate) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := doJSON(e, http.MethodPut, "/api/users/profile", `{"username":"taken"}`)
	c.Set(middleware.KeyUserID, "u1")
	render(e, c, h.UpdateProfile(c))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
