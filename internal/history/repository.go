// Package history provides database-backed records of decks, flashcards and
// study sessions for the sync/export pipeline.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// DeckRecord mirrors one deck row.
type DeckRecord struct {
	ID            string       `db:"id"`
	Name          string       `db:"name"`
	Description   string       `db:"description"`
	Category      string       `db:"category"`
	Color         string       `db:"color"`
	CreatedAt     time.Time    `db:"created_at"`
	LastStudied   sql.NullTime `db:"last_studied"`
	TotalCards    int          `db:"total_cards"`
	MasteredCards int          `db:"mastered_cards"`
}

// CardRecord mirrors one flashcard row. Tags are stored comma-separated.
type CardRecord struct {
	ID           string       `db:"id"`
	DeckID       string       `db:"deck_id"`
	Front        string       `db:"front"`
	Back         string       `db:"back"`
	Difficulty   string       `db:"difficulty"`
	LastReviewed sql.NullTime `db:"last_reviewed"`
	NextReview   time.Time    `db:"next_review"`
	ReviewCount  int          `db:"review_count"`
	CorrectCount int          `db:"correct_count"`
	CreatedAt    time.Time    `db:"created_at"`
	Tags         string       `db:"tags"`
}

// SplitTags converts the stored tag column back into a list.
func (r CardRecord) SplitTags() []string {
	if r.Tags == "" {
		return nil
	}
	return strings.Split(r.Tags, ",")
}

// JoinTags converts a tag list into the stored column format.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SessionRecord mirrors one finished study session row.
type SessionRecord struct {
	ID             string       `db:"id"`
	DeckID         string       `db:"deck_id"`
	StartTime      time.Time    `db:"start_time"`
	EndTime        sql.NullTime `db:"end_time"`
	CardsStudied   int          `db:"cards_studied"`
	CorrectAnswers int          `db:"correct_answers"`
	AverageTimeMs  float64      `db:"average_time_ms"`
}

//go:generate mockgen -source=repository.go -destination=../mocks/history/mock_repository.go -package=mock_history

// DeckRepository defines operations for deck rows.
type DeckRepository interface {
	FindByID(ctx context.Context, id string) (*DeckRecord, error)
	Create(ctx context.Context, record DeckRecord) error
	Update(ctx context.Context, record DeckRecord) error
}

// CardRepository defines operations for flashcard rows.
type CardRepository interface {
	FindByID(ctx context.Context, id string) (*CardRecord, error)
	Create(ctx context.Context, record CardRecord) error
	Update(ctx context.Context, record CardRecord) error
}

// SessionRepository defines operations for study session rows.
// Finished sessions are immutable, so there is no update.
type SessionRepository interface {
	FindByID(ctx context.Context, id string) (*SessionRecord, error)
	Create(ctx context.Context, record SessionRecord) error
}

// DBDeckRepository implements DeckRepository using MySQL.
type DBDeckRepository struct {
	db *sqlx.DB
}

// NewDBDeckRepository creates a new DBDeckRepository.
func NewDBDeckRepository(db *sqlx.DB) *DBDeckRepository {
	return &DBDeckRepository{db: db}
}

// FindByID returns the deck row with the given id, or nil if not found.
func (r *DBDeckRepository) FindByID(ctx context.Context, id string) (*DeckRecord, error) {
	var record DeckRecord
	err := r.db.GetContext(ctx, &record, "SELECT * FROM decks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(deck) > %w", err)
	}
	return &record, nil
}

// Create inserts a new deck row.
func (r *DBDeckRepository) Create(ctx context.Context, record DeckRecord) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO decks (id, name, description, category, color, created_at, last_studied, total_cards, mastered_cards)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Name, record.Description, record.Category, record.Color,
		record.CreatedAt, record.LastStudied, record.TotalCards, record.MasteredCards); err != nil {
		return fmt.Errorf("db.ExecContext(insert deck) > %w", err)
	}
	return nil
}

// Update replaces the mutable columns of an existing deck row.
func (r *DBDeckRepository) Update(ctx context.Context, record DeckRecord) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE decks SET name = ?, description = ?, category = ?, color = ?, last_studied = ?, total_cards = ?, mastered_cards = ?
		WHERE id = ?`,
		record.Name, record.Description, record.Category, record.Color,
		record.LastStudied, record.TotalCards, record.MasteredCards, record.ID); err != nil {
		return fmt.Errorf("db.ExecContext(update deck) > %w", err)
	}
	return nil
}

// DBCardRepository implements CardRepository using MySQL.
type DBCardRepository struct {
	db *sqlx.DB
}

// NewDBCardRepository creates a new DBCardRepository.
func NewDBCardRepository(db *sqlx.DB) *DBCardRepository {
	return &DBCardRepository{db: db}
}

// FindByID returns the flashcard row with the given id, or nil if not found.
func (r *DBCardRepository) FindByID(ctx context.Context, id string) (*CardRecord, error) {
	var record CardRecord
	err := r.db.GetContext(ctx, &record, "SELECT * FROM flashcards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(flashcard) > %w", err)
	}
	return &record, nil
}

// Create inserts a new flashcard row.
func (r *DBCardRepository) Create(ctx context.Context, record CardRecord) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO flashcards (id, deck_id, front, back, difficulty, last_reviewed, next_review, review_count, correct_count, created_at, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.DeckID, record.Front, record.Back, record.Difficulty,
		record.LastReviewed, record.NextReview, record.ReviewCount, record.CorrectCount,
		record.CreatedAt, record.Tags); err != nil {
		return fmt.Errorf("db.ExecContext(insert flashcard) > %w", err)
	}
	return nil
}

// Update replaces the mutable columns of an existing flashcard row.
func (r *DBCardRepository) Update(ctx context.Context, record CardRecord) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE flashcards SET deck_id = ?, front = ?, back = ?, difficulty = ?, last_reviewed = ?, next_review = ?, review_count = ?, correct_count = ?, tags = ?
		WHERE id = ?`,
		record.DeckID, record.Front, record.Back, record.Difficulty,
		record.LastReviewed, record.NextReview, record.ReviewCount, record.CorrectCount,
		record.Tags, record.ID); err != nil {
		return fmt.Errorf("db.ExecContext(update flashcard) > %w", err)
	}
	return nil
}

// DBSessionRepository implements SessionRepository using MySQL.
type DBSessionRepository struct {
	db *sqlx.DB
}

// NewDBSessionRepository creates a new DBSessionRepository.
func NewDBSessionRepository(db *sqlx.DB) *DBSessionRepository {
	return &DBSessionRepository{db: db}
}

// FindByID returns the session row with the given id, or nil if not found.
func (r *DBSessionRepository) FindByID(ctx context.Context, id string) (*SessionRecord, error) {
	var record SessionRecord
	err := r.db.GetContext(ctx, &record, "SELECT * FROM study_sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(study_session) > %w", err)
	}
	return &record, nil
}

// Create inserts a new study session row.
func (r *DBSessionRepository) Create(ctx context.Context, record SessionRecord) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO study_sessions (id, deck_id, start_time, end_time, cards_studied, correct_answers, average_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.DeckID, record.StartTime, record.EndTime,
		record.CardsStudied, record.CorrectAnswers, record.AverageTimeMs); err != nil {
		return fmt.Errorf("db.ExecContext(insert study_session) > %w", err)
	}
	return nil
}
