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

type stubTutorialService struct {
	createFn     func(ctx context.Context, authorID string, input ports.CreateTutorialInput) (*domain.Tutorial, error)
	listOwnedFn  func(ctx context.Context, authorID string, published *bool) ([]*domain.Tutorial, error)
	getOwnedFn   func(ctx context.Context, authorID, id string) (*domain.Tutorial, error)
	updateFn     func(ctx context.Context, authorID, id string, input ports.UpdateTutorialInput) (*domain.Tutorial, error)
	deleteFn     func(ctx context.Context, authorID, id string) error
	listPublicFn func(ctx context.Context) ([]*domain.Tutorial, error)
	getPublicFn  func(ctx context.Context, id string) (*domain.Tutorial, error)
	statsFn      func(ctx context.Context) (*ports.StatsResult, error)
}

func (s *stubTutorialService) Create(ctx context.Context, authorID string, input ports.CreateTutorialInput) (*domain.Tutorial, error) {
	return s.createFn(ctx, authorID, input)
}

func (s *stubTutorialService) ListOwned(ctx context.Context, authorID string, published *bool) ([]*domain.Tutorial, error) {
	return s.listOwnedFn(ctx, authorID, published)
}

func (s *stubTutorialService) GetOwned(ctx context.Context, authorID, id string) (*domain.Tutorial, error) {
	return s.getOwnedFn(ctx, authorID, id)
}

func (s *stubTutorialService) Update(ctx context.Context, authorID, id string, input ports.UpdateTutorialInput) (*domain.Tutorial, error) {
	return s.updateFn(ctx, authorID, id, input)
}

func (s *stubTutorialService) Delete(ctx context.Context, authorID, id string) error {
	return s.deleteFn(ctx, authorID, id)
}

func (s *stubTutorialService) ListPublic(ctx context.Context) ([]*domain.Tutorial, error) {
	return s.listPublicFn(ctx)
}

func (s *stubTutorialService) GetPublic(ctx context.Context, id string) (*domain.Tutorial, error) {
	return s.getPublicFn(ctx, id)
}

func (s *stubTutorialService) Stats(ctx context.Context) (*ports.StatsResult, error) {
	return s.statsFn(ctx)
}

func sampleTutorial() *domain.Tutorial {
	return &domain.Tutorial{
		ID:             "64b000000000000000000001",
		Title:          "Getting started with Go",
		Sections:       []domain.Section{{Title: "Intro", Content: "Install the toolchain first."}},
		Tags:           []string{"go"},
		AuthorID:       "u1",
		AuthorUsername: "alice",
		Views:          3,
		Published:      true,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

const validCreateBody = `{
	"title": "Getting started with Go",
	"sections": [{"title": "Intro", "content": "Install the toolchain first."}],
	"tags": ["go"]
}`

func TestTutorialHandler_Create_Success(t *testing.T) {
	e := newEcho()
	var gotAuthor string
	stub := &stubTutorialService{
		createFn: func(_ context.Context, authorID string, input ports.CreateTutorialInput) (*domain.Tutorial, error) {
			gotAuthor = authorID
			if input.Title != "Getting started with Go" || len(input.Sections) != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleTutorial(), nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/api/tutorials", validCreateBody)
	c.Set(middleware.KeyUserID, "u1")
	render(e, c, h.Create(c))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotAuthor != "u1" {
		t.Fatalf("expected author u1, got %q", gotAuthor)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	author, ok := resp["author"].(map[string]any)
	if !ok || author["username"] != "alice" {
		t.Fatalf("expected embedded author summary, got %+v", resp["author"])
	}
}

func TestTutorialHandler_Create_Anonymous(t *testing.T) {
	e := newEcho()
	stub := &stubTutorialService{
		createFn: func(context.Context, string, ports.CreateTutorialInput) (*domain.Tutorial, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/api/tutorials", validCreateBody)
	render(e, c, h.Create(c))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTutorialHandler_Create_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubTutorialService{
		createFn: func(context.Context, string, ports.CreateTutorialInput) (*domain.Tutorial, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	cases := []struct {
		name string
		body string
	}{
		{"short title", `{"title":"hey","sections":[{"title":"Intro","content":"Install the toolchain first."}]}`},
		{"short section content", `{"title":"Getting started with Go","sections":[{"title":"Intro","content":"short"}]}`},
		{"quiz with one option", `{"title":"Getting started with Go","sections":[{"title":"Intro","content":"Install the toolchain first.","quiz":[{"question":"Which?","options":["only one"],"correct":0}]}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := doJSON(e, http.MethodPost, "/api/tutorials", tc.body)
			c.Set(middleware.KeyUserID, "u1")
			render(e, c, h.Create(c))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTutorialHandler_ListOwned_PublishedQuery(t *testing.T) {
	e := newEcho()
	var gotFilter *bool
	stub := &stubTutorialService{
		listOwnedFn: func(_ context.Context, _ string, published *bool) ([]*domain.Tutorial, error) {
			gotFilter = published
			return []*domain.Tutorial{sampleTutorial()}, nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	cases := []struct {
		query string
		want  *bool
	}{
		{"", nil},
		{"?published=true", boolPtr(true)},
		{"?published=false", boolPtr(false)},
		{"?published=banana", nil},
	}

	for _, tc := range cases {
		gotFilter = nil
		c, rec := doJSON(e, http.MethodGet, "/api/tutorials"+tc.query, "")
		c.Set(middleware.KeyUserID, "u1")
		render(e, c, h.ListOwned(c))

		if rec.Code != http.StatusOK {
			t.Fatalf("query %q: expected 200, got %d", tc.query, rec.Code)
		}
		switch {
		case tc.want == nil && gotFilter != nil:
			t.Fatalf("query %q: expected nil filter, got %v", tc.query, *gotFilter)
		case tc.want != nil && (gotFilter == nil || *gotFilter != *tc.want):
			t.Fatalf("query %q: expected filter %v, got %v", tc.query, *tc.want, gotFilter)
		}
	}
}

func TestTutorialHandler_GetOwned_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubTutorialService{
		getOwnedFn: func(context.Context, string, string) (*domain.Tutorial, error) {
			return nil, domain.ErrTutorialNotFound
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/tutorials/64b000000000000000000009", "")
	c.Set(middleware.KeyUserID, "u1")
	c.SetParamNames("id")
	c.SetParamValues("64b000000000000000000009")
	render(e, c, h.GetOwned(c))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Not found" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestTutorialHandler_Delete_Message(t *testing.T) {
	e := newEcho()
	var deletedID string
	stub := &stubTutorialService{
		deleteFn: func(_ context.Context, _ string, id string) error {
			deletedID = id
			return nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodDelete, "/api/tutorials/64b000000000000000000001", "")
	c.Set(middleware.KeyUserID, "u1")
	c.SetParamNames("id")
	c.SetParamValues("64b000000000000000000001")
	render(e, c, h.Delete(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deletedID != "64b000000000000000000001" {
		t.Fatalf("wrong id deleted: %q", deletedID)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Tutorial deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestTutorialHandler_GetPublic_InvalidID(t *testing.T) {
	e := newEcho()
	stub := &stubTutorialService{
		getPublicFn: func(context.Context, string) (*domain.Tutorial, error) {
			return nil, domain.ErrInvalidID
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/tutorials/public/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	render(e, c, h.GetPublic(c))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Invalid ID" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestTutorialHandler_ListPublic(t *testing.T) {
	e := newEcho()
	stub := &stubTutorialService{
		listPublicFn: func(context.Context) ([]*domain.Tutorial, error) {
			return []*domain.Tutorial{sampleTutorial()}, nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/tutorials/public", "")
	render(e, c, h.ListPublic(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 tutorial, got %d", len(list))
	}
	if list[0]["views"] != float64(3) {
		t.Fatalf("expected views 3, got %v", list[0]["views"])
	}
}

func TestTutorialHandler_GetPublic_EmptyCollectionsSerializeAsArrays(t *testing.T) {
	e := newEcho()
	stub := &stubTutorialService{
		getPublicFn: func(context.Context, string) (*domain.Tutorial, error) {
			tut := sampleTutorial()
			tut.Tags = nil
			tut.Sections = nil
			return tut, nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/tutorials/public/64b000000000000000000001", "")
	c.SetParamNames("id")
	c.SetParamValues("64b000000000000000000001")
	render(e, c, h.GetPublic(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if tags, ok := resp["tags"].([]any); !ok || len(tags) != 0 {
		t.Fatalf("expected tags to be an empty array, got %v", resp["tags"])
	}
	if sections, ok := resp["sections"].([]any); !ok || len(sections) != 0 {
		t.Fatalf("expected sections to be an empty array, got %v", resp["sections"])
	}
}

func TestTutorialHandler_Stats(t *testing.T) {
	e := newEcho()
	stub := &stubTutorialService{
		statsFn: func(context.Context) (*ports.StatsResult, error) {
			return &ports.StatsResult{Tutorials: 7, Authors: 3, Views: 42}, nil
		},
	}
	h := handler.NewTutorialHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/stats", "")
	render(e, c, h.Stats(c))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["tutorials"] != 7 || resp["authors"] != 3 || resp["views"] != 42 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

func boolPtr(v bool) *bool { return &v }
