package handler

import (
	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createTutorialRequest) ports.CreateTutorialInput {
	return ports.CreateTutorialInput{
		Title:     req.Title,
		Sections:  toSectionInputs(req.Sections),
		Tags:      req.Tags,
		Published: req.Published,
	}
}

func toUpdateInput(req updateTutorialRequest) ports.UpdateTutorialInput {
	input := ports.UpdateTutorialInput{
		Title:     req.Title,
		Tags:      req.Tags,
		Published: req.Published,
	}
	if req.Sections != nil {
		input.Sections = toSectionInputs(req.Sections)
	}
	return input
}

func toSectionInputs(sections []sectionRequest) []ports.SectionInput {
	out := make([]ports.SectionInput, len(sections))
	for i, s := range sections {
		in := ports.SectionInput{Title: s.Title, Content: s.Content}
		if len(s.Quiz) > 0 {
			in.Quiz = make([]ports.QuizItemInput, len(s.Quiz))
			for j, q := range s.Quiz {
				in.Quiz[j] = ports.QuizItemInput{
					Question: q.Question,
					Options:  q.Options,
					Correct:  q.Correct,
				}
			}
		}
		out[i] = in
	}
	return out
}

// --- Domain → HTTP response ---

func toTutorialResponse(t *domain.Tutorial) tutorialResponse {
	sections := make([]sectionResponse, len(t.Sections))
	for i, s := range t.Sections {
		section := sectionResponse{Title: s.Title, Content: s.Content}
		if len(s.Quiz) > 0 {
			section.Quiz = make([]quizItemResponse, len(s.Quiz))
			for j, q := range s.Quiz {
				section.Quiz[j] = quizItemResponse{
					Question: q.Question,
					Options:  q.Options,
					Correct:  q.Correct,
				}
			}
		}
		sections[i] = section
	}

	// A tutorial stored without tags comes back with a nil slice; clients
	// expect "tags": [] rather than null.
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}

	return tutorialResponse{
		ID:       t.ID,
		Title:    t.Title,
		Sections: sections,
		Tags:     tags,
		Author: authorResponse{
			ID:       t.AuthorID,
			Username: t.AuthorUsername,
		},
		Views:     t.Views,
		Published: t.Published,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func toTutorialListResponse(list []*domain.Tutorial) []tutorialResponse {
	out := make([]tutorialResponse, len(list))
	for i, t := range list {
		out[i] = toTutorialResponse(t)
	}
	return out
}
