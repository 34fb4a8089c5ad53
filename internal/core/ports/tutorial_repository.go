package ports

import (
	"context"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
)

// TutorialUpdate carries a partial update. Nil fields are left untouched;
// provided fields replace the stored value wholesale.
type TutorialUpdate struct {
	Title     *string
	Sections  []domain.Section
	Tags      []string
	Published *bool
}

// TutorialRepository defines persistence for the content store.
type TutorialRepository interface {
	Create(ctx context.Context, t *domain.Tutorial) (*domain.Tutorial, error)
	// FindOwned retrieves a tutorial by id scoped to its author. A tutorial
	// that exists but belongs to someone else is reported as not found.
	FindOwned(ctx context.Context, authorID, id string) (*domain.Tutorial, error)
	// ListOwned returns an author's tutorials newest first, optionally
	// filtered by published state.
	ListOwned(ctx context.Context, authorID string, published *bool) ([]*domain.Tutorial, error)
	// ListPublished returns at most limit published tutorials, newest first.
	ListPublished(ctx context.Context, limit int64) ([]*domain.Tutorial, error)
	// FindPublishedAndIncrementViews fetches a published tutorial by id and
	// bumps its view counter in the same storage operation, returning the
	// post-increment document.
	FindPublishedAndIncrementViews(ctx context.Context, id string) (*domain.Tutorial, error)
	// Update applies a partial update scoped to the author and returns the
	// updated record, or domain.ErrTutorialNotFound when no owned tutorial
	// matches.
	Update(ctx context.Context, authorID, id string, patch TutorialUpdate) (*domain.Tutorial, error)
	Delete(ctx context.Context, authorID, id string) error
	Count(ctx context.Context) (int64, error)
	SumViews(ctx context.Context) (int64, error)
}
