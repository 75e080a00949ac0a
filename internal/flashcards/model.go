// Package flashcards provides the deck/card domain model, the spaced
// repetition scheduler and the study session engine.
package flashcards

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Difficulty is an informational label on a card. The scheduler ignores it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Timestamp wraps time.Time for RFC3339 YAML serialization.
// Stored dates must round-trip back into time values, otherwise due-date
// comparisons silently break after a reload.
type Timestamp struct {
	time.Time
}

// NewTimestamp creates a Timestamp from a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalYAML implements the yaml.Marshaler interface
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return ts.Format(time.RFC3339Nano), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (ts *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(time.RFC3339Nano, value.Value)
	if err == nil {
		ts.Time = t
		return nil
	}

	t, err = time.Parse(time.RFC3339, value.Value)
	if err == nil {
		ts.Time = t
		return nil
	}

	// Older state files stored dates without a time component
	t, err = time.Parse("2006-01-02", value.Value)
	if err == nil {
		ts.Time = t
		return nil
	}

	return fmt.Errorf("unable to parse timestamp '%s': expected RFC3339, RFC3339Nano, or YYYY-MM-DD format", value.Value)
}

// Deck is a named collection of flashcards.
type Deck struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Category    string     `yaml:"category,omitempty"`
	Color       string     `yaml:"color,omitempty"`
	CreatedAt   Timestamp  `yaml:"created_at"`
	LastStudied *Timestamp `yaml:"last_studied,omitempty"`

	// TotalCards is a denormalized counter kept in step with the number of
	// cards whose DeckID references this deck.
	TotalCards    int `yaml:"total_cards"`
	MasteredCards int `yaml:"mastered_cards"`
}

// Flashcard is a single question/answer unit owned by exactly one deck.
type Flashcard struct {
	ID         string     `yaml:"id"`
	Front      string     `yaml:"front"`
	Back       string     `yaml:"back"`
	DeckID     string     `yaml:"deck_id"`
	Difficulty Difficulty `yaml:"difficulty,omitempty"`

	LastReviewed *Timestamp `yaml:"last_reviewed,omitempty"`
	// NextReview is always set. New cards start due immediately.
	NextReview   Timestamp `yaml:"next_review"`
	ReviewCount  int       `yaml:"review_count"`
	CorrectCount int       `yaml:"correct_count"`
	CreatedAt    Timestamp `yaml:"created_at"`
	Tags         []string  `yaml:"tags,omitempty"`
}

// Accuracy returns the card's lifetime accuracy in [0, 1], or 0 before the
// first review.
func (c Flashcard) Accuracy() float64 {
	if c.ReviewCount == 0 {
		return 0
	}
	return float64(c.CorrectCount) / float64(c.ReviewCount)
}

// IsDue reports whether the card is due for review at the given time.
func (c Flashcard) IsDue(now time.Time) bool {
	return !c.NextReview.After(now)
}

// StudySession is one continuous study interval against a single deck.
// A session with a nil EndTime is still active; finished sessions are
// appended to history and never mutated again.
type StudySession struct {
	ID             string     `yaml:"id"`
	DeckID         string     `yaml:"deck_id"`
	StartTime      Timestamp  `yaml:"start_time"`
	EndTime        *Timestamp `yaml:"end_time,omitempty"`
	CardsStudied   int        `yaml:"cards_studied"`
	CorrectAnswers int        `yaml:"correct_answers"`

	// AverageTimeMs is the running mean response time in milliseconds.
	AverageTimeMs float64 `yaml:"average_time_ms"`
}

// State is the full persisted engine state.
type State struct {
	Decks         []Deck         `yaml:"decks"`
	Flashcards    []Flashcard    `yaml:"flashcards"`
	StudySessions []StudySession `yaml:"study_sessions"`
}
