package service

import (
	"context"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tutorialhub/tutorial-platform/internal/api/metrics"
	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

// publicListLimit caps the public feed at the 10 newest published tutorials.
const publicListLimit = 10

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// TutorialService implements authoring, browsing and aggregate stats.
type TutorialService struct {
	tutorials ports.TutorialRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewTutorialService(tutorials ports.TutorialRepository, users ports.UserRepository, logger zerolog.Logger) *TutorialService {
	return &TutorialService{tutorials: tutorials, users: users, logger: logger}
}

func (s *TutorialService) Create(ctx context.Context, authorID string, input ports.CreateTutorialInput) (*domain.Tutorial, error) {
	if err := validateTutorialFields(input.Title, input.Sections, input.Tags); err != nil {
		return nil, err
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	now := time.Now().UTC()
	tutorial := &domain.Tutorial{
		Title:     input.Title,
		Sections:  toSections(input.Sections),
		Tags:      input.Tags,
		AuthorID:  authorID,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.tutorials.Create(ctx, tutorial)
	if err != nil {
		s.logger.Error().Err(err).Str("author_id", authorID).Msg("failed to create tutorial")
		return nil, err
	}

	if err := s.attachAuthor(ctx, created); err != nil {
		return nil, err
	}

	metrics.TutorialsCreatedTotal.Inc()
	s.logger.Info().Str("tutorial_id", created.ID).Str("author_id", authorID).Msg("tutorial created")
	return created, nil
}

func (s *TutorialService) ListOwned(ctx context.Context, authorID string, published *bool) ([]*domain.Tutorial, error) {
	list, err := s.tutorials.ListOwned(ctx, authorID, published)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *TutorialService) GetOwned(ctx context.Context, authorID, id string) (*domain.Tutorial, error) {
	tutorial, err := s.tutorials.FindOwned(ctx, authorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthor(ctx, tutorial); err != nil {
		return nil, err
	}
	return tutorial, nil
}

func (s *TutorialService) Update(ctx context.Context, authorID, id string, input ports.UpdateTutorialInput) (*domain.Tutorial, error) {
	patch := ports.TutorialUpdate{
		Tags:      input.Tags,
		Published: input.Published,
	}
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		patch.Title = input.Title
	}
	if input.Sections != nil {
		if err := validateSections(input.Sections); err != nil {
			return nil, err
		}
		patch.Sections = toSections(input.Sections)
	}
	if input.Tags != nil {
		if err := validateTags(input.Tags); err != nil {
			return nil, err
		}
	}

	updated, err := s.tutorials.Update(ctx, authorID, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthor(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("tutorial_id", id).Str("author_id", authorID).Msg("tutorial updated")
	return updated, nil
}

func (s *TutorialService) Delete(ctx context.Context, authorID, id string) error {
	if err := s.tutorials.Delete(ctx, authorID, id); err != nil {
		return err
	}
	metrics.TutorialsDeletedTotal.Inc()
	s.logger.Info().Str("tutorial_id", id).Str("author_id", authorID).Msg("tutorial deleted")
	return nil
}

func (s *TutorialService) ListPublic(ctx context.Context) ([]*domain.Tutorial, error) {
	list, err := s.tutorials.ListPublished(ctx, publicListLimit)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetPublic fetches a published tutorial by id and counts the view. Malformed
// ids are rejected before touching the store so the public route can answer
// 400 rather than 404.
func (s *TutorialService) GetPublic(ctx context.Context, id string) (*domain.Tutorial, error) {
	if !objectIDPattern.MatchString(id) {
		return nil, domain.ErrInvalidID
	}

	tutorial, err := s.tutorials.FindPublishedAndIncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthor(ctx, tutorial); err != nil {
		return nil, err
	}

	metrics.ViewsServedTotal.Inc()
	return tutorial, nil
}

func (s *TutorialService) Stats(ctx context.Context) (*ports.StatsResult, error) {
	tutorials, err := s.tutorials.Count(ctx)
	if err != nil {
		return nil, err
	}
	authors, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.tutorials.SumViews(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.StatsResult{Tutorials: tutorials, Authors: authors, Views: views}, nil
}

// attachAuthor resolves the author reference to a username at read time.
func (s *TutorialService) attachAuthor(ctx context.Context, t *domain.Tutorial) error {
	user, err := s.users.FindByID(ctx, t.AuthorID)
	if err != nil {
		// A dangling author reference should not hide the tutorial.
		s.logger.Warn().Str("tutorial_id", t.ID).Str("author_id", t.AuthorID).Msg("author lookup failed")
		return nil
	}
	t.AuthorUsername = user.Username
	return nil
}

// attachAuthors resolves author usernames for a whole list in one lookup.
func (s *TutorialService) attachAuthors(ctx context.Context, list []*domain.Tutorial) error {
	if len(list) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(list))
	ids := make([]string, 0, len(list))
	for _, t := range list {
		if _, ok := seen[t.AuthorID]; !ok {
			seen[t.AuthorID] = struct{}{}
			ids = append(ids, t.AuthorID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, t := range list {
		if u, ok := users[t.AuthorID]; ok {
			t.AuthorUsername = u.Username
		}
	}
	return nil
}

func toSections(inputs []ports.SectionInput) []domain.Section {
	sections := make([]domain.Section, len(inputs))
	for i, in := range inputs {
		section := domain.Section{Title: in.Title, Content: in.Content}
		if len(in.Quiz) > 0 {
			quiz := make([]domain.QuizItem, len(in.Quiz))
			for j, q := range in.Quiz {
				quiz[j] = domain.QuizItem{Question: q.Question, Options: q.Options, Correct: q.Correct}
			}
			section.Quiz = quiz
		}
		sections[i] = section
	}
	return sections
}

func validateTutorialFields(title string, sections []ports.SectionInput, tags []string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateSections(sections); err != nil {
		return err
	}
	return validateTags(tags)
}

func validateTitle(title string) error {
	// Character counts, not bytes, matching the HTTP-layer validator.
	if n := utf8.RuneCountInString(title); n < 5 || n > 100 {
		return fmt.Errorf("%w: title must be between 5 and 100 characters", domain.ErrInvalidInput)
	}
	return nil
}

func validateSections(sections []ports.SectionInput) error {
	for i, section := range sections {
		if section.Title == "" {
			return fmt.Errorf("%w: section %d is missing a title", domain.ErrInvalidInput, i+1)
		}
		if utf8.RuneCountInString(section.Content) < 10 {
			return fmt.Errorf("%w: section %d content must be at least 10 characters", domain.ErrInvalidInput, i+1)
		}
		for _, q := range section.Quiz {
			if q.Question == "" {
				return fmt.Errorf("%w: section %d quiz is missing a question", domain.ErrInvalidInput, i+1)
			}
			if len(q.Options) < 2 {
				return fmt.Errorf("%w: section %d quiz needs at least 2 options", domain.ErrInvalidInput, i+1)
			}
			if q.Correct < 0 || q.Correct >= len(q.Options) {
				return fmt.Errorf("%w: section %d quiz correct answer is out of range", domain.ErrInvalidInput, i+1)
			}
		}
	}
	return nil
}

func validateTags(tags []string) error {
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > 20 {
			return fmt.Errorf("%w: tags must be at most 20 characters", domain.ErrInvalidInput)
		}
	}
	return nil
}
