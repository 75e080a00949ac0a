// Package datasync provides export orchestration from the YAML state file
// to the database.
package datasync

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/at-ishikawa/cardbox/internal/flashcards"
	"github.com/at-ishikawa/cardbox/internal/history"
)

// ExportResult tracks counts for each export operation.
type ExportResult struct {
	DecksNew        int
	DecksSkipped    int
	DecksUpdated    int
	CardsNew        int
	CardsSkipped    int
	CardsUpdated    int
	SessionsNew     int
	SessionsSkipped int
}

// ExportOptions controls export behavior.
type ExportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Exporter reads engine state and writes it to the database.
type Exporter struct {
	deckRepo    history.DeckRepository
	cardRepo    history.CardRepository
	sessionRepo history.SessionRepository
	writer      io.Writer
}

// NewExporter creates a new Exporter.
func NewExporter(deckRepo history.DeckRepository, cardRepo history.CardRepository, sessionRepo history.SessionRepository, writer io.Writer) *Exporter {
	return &Exporter{
		deckRepo:    deckRepo,
		cardRepo:    cardRepo,
		sessionRepo: sessionRepo,
		writer:      writer,
	}
}

// Export copies decks, flashcards and finished sessions into the database.
// Existing rows are skipped unless UpdateExisting is set; sessions are
// immutable and only ever inserted.
func (exp *Exporter) Export(ctx context.Context, state flashcards.State, opts ExportOptions) (*ExportResult, error) {
	var result ExportResult

	for _, deck := range state.Decks {
		if err := exp.exportDeck(ctx, deck, opts, &result); err != nil {
			return nil, fmt.Errorf("exportDeck(%s) > %w", deck.ID, err)
		}
	}
	for _, card := range state.Flashcards {
		if err := exp.exportCard(ctx, card, opts, &result); err != nil {
			return nil, fmt.Errorf("exportCard(%s) > %w", card.ID, err)
		}
	}
	for _, session := range state.StudySessions {
		if err := exp.exportSession(ctx, session, opts, &result); err != nil {
			return nil, fmt.Errorf("exportSession(%s) > %w", session.ID, err)
		}
	}

	return &result, nil
}

func (exp *Exporter) exportDeck(ctx context.Context, deck flashcards.Deck, opts ExportOptions, result *ExportResult) error {
	existing, err := exp.deckRepo.FindByID(ctx, deck.ID)
	if err != nil {
		return fmt.Errorf("deckRepo.FindByID() > %w", err)
	}

	record := toDeckRecord(deck)
	switch {
	case existing == nil:
		result.DecksNew++
		if opts.DryRun {
			fmt.Fprintf(exp.writer, "[dry-run] would create deck %q (%s)\n", deck.Name, deck.ID)
			return nil
		}
		if err := exp.deckRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("deckRepo.Create() > %w", err)
		}
	case opts.UpdateExisting:
		result.DecksUpdated++
		if opts.DryRun {
			fmt.Fprintf(exp.writer, "[dry-run] would update deck %q (%s)\n", deck.Name, deck.ID)
			return nil
		}
		if err := exp.deckRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("deckRepo.Update() > %w", err)
		}
	default:
		result.DecksSkipped++
	}
	return nil
}

func (exp *Exporter) exportCard(ctx context.Context, card flashcards.Flashcard, opts ExportOptions, result *ExportResult) error {
	existing, err := exp.cardRepo.FindByID(ctx, card.ID)
	if err != nil {
		return fmt.Errorf("cardRepo.FindByID() > %w", err)
	}

	record := toCardRecord(card)
	switch {
	case existing == nil:
		result.CardsNew++
		if opts.DryRun {
			fmt.Fprintf(exp.writer, "[dry-run] would create flashcard %s\n", card.ID)
			return nil
		}
		if err := exp.cardRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("cardRepo.Create() > %w", err)
		}
	case opts.UpdateExisting:
		result.CardsUpdated++
		if opts.DryRun {
			fmt.Fprintf(exp.writer, "[dry-run] would update flashcard %s\n", card.ID)
			return nil
		}
		if err := exp.cardRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("cardRepo.Update() > %w", err)
		}
	default:
		result.CardsSkipped++
	}
	return nil
}

func (exp *Exporter) exportSession(ctx context.Context, session flashcards.StudySession, opts ExportOptions, result *ExportResult) error {
	existing, err := exp.sessionRepo.FindByID(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("sessionRepo.FindByID() > %w", err)
	}
	if existing != nil {
		result.SessionsSkipped++
		return nil
	}

	result.SessionsNew++
	if opts.DryRun {
		fmt.Fprintf(exp.writer, "[dry-run] would create session %s\n", session.ID)
		return nil
	}
	if err := exp.sessionRepo.Create(ctx, toSessionRecord(session)); err != nil {
		return fmt.Errorf("sessionRepo.Create() > %w", err)
	}
	return nil
}

func toDeckRecord(deck flashcards.Deck) history.DeckRecord {
	return history.DeckRecord{
		ID:            deck.ID,
		Name:          deck.Name,
		Description:   deck.Description,
		Category:      deck.Category,
		Color:         deck.Color,
		CreatedAt:     deck.CreatedAt.Time,
		LastStudied:   toNullTime(deck.LastStudied),
		TotalCards:    deck.TotalCards,
		MasteredCards: deck.MasteredCards,
	}
}

func toCardRecord(card flashcards.Flashcard) history.CardRecord {
	return history.CardRecord{
		ID:           card.ID,
		DeckID:       card.DeckID,
		Front:        card.Front,
		Back:         card.Back,
		Difficulty:   string(card.Difficulty),
		LastReviewed: toNullTime(card.LastReviewed),
		NextReview:   card.NextReview.Time,
		ReviewCount:  card.ReviewCount,
		CorrectCount: card.CorrectCount,
		CreatedAt:    card.CreatedAt.Time,
		Tags:         history.JoinTags(card.Tags),
	}
}

func toSessionRecord(session flashcards.StudySession) history.SessionRecord {
	return history.SessionRecord{
		ID:             session.ID,
		DeckID:         session.DeckID,
		StartTime:      session.StartTime.Time,
		EndTime:        toNullTime(session.EndTime),
		CardsStudied:   session.CardsStudied,
		CorrectAnswers: session.CorrectAnswers,
		AverageTimeMs:  session.AverageTimeMs,
	}
}

func toNullTime(ts *flashcards.Timestamp) sql.NullTime {
	if ts == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: ts.Time, Valid: true}
}
