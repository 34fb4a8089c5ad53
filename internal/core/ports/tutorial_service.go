package ports

import (
	"context"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
)

// QuizItemInput is a single quiz question as submitted by the author.
type QuizItemInput struct {
	Question string
	Options  []string
	Correct  int
}

// SectionInput is one tutorial section as submitted by the author. Order in
// the slice is the order readers will see.
type SectionInput struct {
	Title   string
	Content string
	Quiz    []QuizItemInput
}

// CreateTutorialInput carries everything needed to create a tutorial.
// Published defaults to true when nil.
type CreateTutorialInput struct {
	Title     string
	Sections  []SectionInput
	Tags      []string
	Published *bool
}

// UpdateTutorialInput is a partial update; nil fields are left unchanged.
type UpdateTutorialInput struct {
	Title     *string
	Sections  []SectionInput
	Tags      []string
	Published *bool
}

// StatsResult aggregates platform-wide counters for the public stats endpoint.
type StatsResult struct {
	Tutorials int64
	Authors   int64
	Views     int64
}

type TutorialService interface {
	Create(ctx context.Context, authorID string, input CreateTutorialInput) (*domain.Tutorial, error)
	ListOwned(ctx context.Context, authorID string, published *bool) ([]*domain.Tutorial, error)
	GetOwned(ctx context.Context, authorID, id string) (*domain.Tutorial, error)
	Update(ctx context.Context, authorID, id string, input UpdateTutorialInput) (*domain.Tutorial, error)
	Delete(ctx context.Context, authorID, id string) error
	ListPublic(ctx context.Context) ([]*domain.Tutorial, error)
	// GetPublic fetches a published tutorial and increments its view counter
	// as a side effect of the successful read.
	GetPublic(ctx context.Context, id string) (*domain.Tutorial, error)
	Stats(ctx context.Context) (*StatsResult, error)
}
