package handler

import "time"

// --- Request types ---

type quizItemRequest struct {
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options"  validate:"min=2,dive,required"`
	Correct  int      `json:"correct"  validate:"gte=0"`
}

type sectionRequest struct {
	Title   string            `json:"title"   validate:"required"`
	Content string            `json:"content" validate:"required,min=10"`
	Quiz    []quizItemRequest `json:"quiz"    validate:"omitempty,dive"`
}

type createTutorialRequest struct {
	Title    string           `json:"title"    validate:"required,min=5,max=100"`
	Sections []sectionRequest `json:"sections" validate:"omitempty,dive"`
	Tags     []string         `json:"tags"     validate:"omitempty,dive,max=20"`
	// Published defaults to true when omitted.
	Published *bool `json:"published"`
}

// updateTutorialRequest is a partial update: absent fields stay untouched.
type updateTutorialRequest struct {
	Title     *string          `json:"title"    validate:"omitempty,min=5,max=100"`
	Sections  []sectionRequest `json:"sections" validate:"omitempty,dive"`
	Tags      []string         `json:"tags"     validate:"omitempty,dive,max=20"`
	Published *bool            `json:"published"`
}

// --- Response types ---

type quizItemResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

type sectionResponse struct {
	Title   string             `json:"title"`
	Content string             `json:"content"`
	Quiz    []quizItemResponse `json:"quiz,omitempty"`
}

type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type tutorialResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Sections  []sectionResponse `json:"sections"`
	Tags      []string          `json:"tags"`
	Author    authorResponse    `json:"author"`
	Views     int64             `json:"views"`
	Published bool              `json:"published"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type statsResponse struct {
	Tutorials int64 `json:"tutorials"`
	Authors   int64 `json:"authors"`
	Views     int64 `json:"views"`
}
