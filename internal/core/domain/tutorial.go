package domain

import "time"

// QuizItem is a single multiple-choice question attached to a section.
// Correct is a zero-based index into Options.
type QuizItem struct {
	Question string   `json:"question" bson:"question"`
	Options  []string `json:"options" bson:"options"`
	Correct  int      `json:"correct" bson:"correct"`
}

// Section is a titled block of content within a tutorial. Sections have no
// identity of their own; order is the order the author saved them in.
type Section struct {
	Title   string     `json:"title" bson:"title"`
	Content string     `json:"content" bson:"content"`
	Quiz    []QuizItem `json:"quiz,omitempty" bson:"quiz,omitempty"`
}

// Tutorial is the core aggregate: an ordered sequence of sections authored by
// exactly one user. Views only ever grows; Published gates public visibility.
type Tutorial struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Sections       []Section `json:"sections"`
	Tags           []string  `json:"tags"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"-"`
	Views          int64     `json:"views"`
	Published      bool      `json:"published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
