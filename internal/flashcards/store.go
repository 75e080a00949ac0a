package flashcards

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const defaultDeckColor = "#6B7280"

// Store is the authoritative in-memory repository of decks, flashcards and
// study sessions. All operations are synchronous; a mutex serializes access
// so the engine keeps the same atomicity guarantees when called from
// multiple goroutines.
type Store struct {
	mu             sync.Mutex
	state          State
	currentSession *StudySession
	selectedDeckID string

	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return NewStoreFromState(State{})
}

// NewStoreFromState creates a store seeded with previously persisted state.
func NewStoreFromState(state State) *Store {
	return &Store{
		state: state,
		now:   time.Now,
	}
}

// Snapshot returns a deep copy of the persistable state. The active session
// is deliberately excluded: only finished sessions belong to history.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Decks:         append([]Deck(nil), s.state.Decks...),
		Flashcards:    cloneCards(s.state.Flashcards),
		StudySessions: append([]StudySession(nil), s.state.StudySessions...),
	}
}

func cloneCards(cards []Flashcard) []Flashcard {
	cloned := append([]Flashcard(nil), cards...)
	for i := range cloned {
		cloned[i].Tags = append([]string(nil), cloned[i].Tags...)
	}
	return cloned
}

// CreateDeck appends a new deck with zero counters and selects it.
func (s *Store) CreateDeck(name, description, category, color string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("gonanoid.New() > %w", err)
	}

	if color == "" {
		color = defaultDeckColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Decks = append(s.state.Decks, Deck{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Color:       color,
		CreatedAt:   NewTimestamp(s.now()),
	})
	s.selectedDeckID = id
	return id, nil
}

// DeckUpdate holds the deck fields that may be changed after creation.
// Nil fields are left untouched.
type DeckUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Color       *string
}

// UpdateDeck merges the given fields into the deck. Updating a missing deck
// is a no-op.
func (s *Store) UpdateDeck(id string, update DeckUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck := s.findDeck(id)
	if deck == nil {
		slog.Debug("update for unknown deck ignored", "deck_id", id)
		return
	}

	if update.Name != nil {
		deck.Name = *update.Name
	}
	if update.Description != nil {
		deck.Description = *update.Description
	}
	if update.Category != nil {
		deck.Category = *update.Category
	}
	if update.Color != nil {
		deck.Color = *update.Color
	}
}

// DeleteDeck removes the deck and every flashcard it owns. Session history
// for the deck is kept; readers of history must handle deck lookups that
// come back empty. The selection is cleared when it pointed at the deck.
func (s *Store) DeleteDeck(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	decks := s.state.Decks[:0]
	for _, deck := range s.state.Decks {
		if deck.ID != id {
			decks = append(decks, deck)
		}
	}
	s.state.Decks = decks

	cards := s.state.Flashcards[:0]
	for _, card := range s.state.Flashcards {
		if card.DeckID != id {
			cards = append(cards, card)
		}
	}
	s.state.Flashcards = cards

	if s.selectedDeckID == id {
		s.selectedDeckID = ""
	}
}

// SelectDeck marks a deck as the current selection. An empty id clears it.
func (s *Store) SelectDeck(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDeckID = id
}

// SelectedDeckID returns the id of the currently selected deck, or "".
func (s *Store) SelectedDeckID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDeckID
}

// CreateFlashcard appends a card to a deck and bumps the deck's card
// counter. New cards are due immediately.
func (s *Store) CreateFlashcard(deckID, front, back string, tags []string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("gonanoid.New() > %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendCard(Flashcard{
		ID:         id,
		Front:      front,
		Back:       back,
		DeckID:     deckID,
		Difficulty: DifficultyMedium,
		NextReview: NewTimestamp(s.now()),
		CreatedAt:  NewTimestamp(s.now()),
		Tags:       append([]string(nil), tags...),
	})
	return id, nil
}

// appendCard adds a card and keeps the owning deck's counter in step.
// Callers must hold s.mu.
func (s *Store) appendCard(card Flashcard) {
	s.state.Flashcards = append(s.state.Flashcards, card)
	if deck := s.findDeck(card.DeckID); deck != nil {
		deck.TotalCards++
	}
}

// CardUpdate holds the flashcard fields that may be changed after creation.
// Nil fields are left untouched.
type CardUpdate struct {
	Front      *string
	Back       *string
	Difficulty *Difficulty
	Tags       *[]string
}

// UpdateFlashcard merges the given fields into the card. Updating a missing
// card is a no-op.
func (s *Store) UpdateFlashcard(id string, update CardUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.findCard(id)
	if card == nil {
		slog.Debug("update for unknown flashcard ignored", "card_id", id)
		return
	}

	if update.Front != nil {
		card.Front = *update.Front
	}
	if update.Back != nil {
		card.Back = *update.Back
	}
	if update.Difficulty != nil {
		card.Difficulty = *update.Difficulty
	}
	if update.Tags != nil {
		card.Tags = append([]string(nil), *update.Tags...)
	}
}

// DeleteFlashcard removes a card and decrements the owning deck's counter.
func (s *Store) DeleteFlashcard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deckID string
	cards := s.state.Flashcards[:0]
	for _, card := range s.state.Flashcards {
		if card.ID == id {
			deckID = card.DeckID
			continue
		}
		cards = append(cards, card)
	}
	s.state.Flashcards = cards

	if deckID == "" {
		return
	}
	if deck := s.findDeck(deckID); deck != nil && deck.TotalCards > 0 {
		deck.TotalCards--
	}
}

// StartSession begins a study session against a deck. If a session is
// already active it is finalized into history first, so partial progress is
// never lost.
func (s *Store) StartSession(deckID string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("gonanoid.New() > %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSession != nil {
		s.finalizeSession()
	}

	s.currentSession = &StudySession{
		ID:        id,
		DeckID:    deckID,
		StartTime: NewTimestamp(s.now()),
	}
	return id, nil
}

// ReviewCard records the outcome of a single review: the card's counters
// and due date move, and the active session's tallies are updated.
// Reviewing an unknown card is a no-op.
func (s *Store) ReviewCard(cardID string, correct bool, timeSpentMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.findCard(cardID)
	if card == nil {
		slog.Debug("review for unknown flashcard ignored", "card_id", cardID)
		return
	}

	// The interval is derived from the counters as they stood before this
	// review; only then are the counters advanced.
	interval := CalculateInterval(*card, correct)
	now := s.now()

	card.LastReviewed = &Timestamp{Time: now}
	card.NextReview = NewTimestamp(nextReviewAt(now, interval))
	card.ReviewCount++
	if correct {
		card.CorrectCount++
	}

	s.refreshMasteredCount(card.DeckID)

	if s.currentSession == nil {
		return
	}
	session := s.currentSession
	n := session.CardsStudied
	session.AverageTimeMs = (session.AverageTimeMs*float64(n) + float64(timeSpentMs)) / float64(n+1)
	session.CardsStudied++
	if correct {
		session.CorrectAnswers++
	}
}

// EndSession finalizes the active session into history and stamps the
// deck's last-studied time. Calling it with no active session is a no-op.
func (s *Store) EndSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSession == nil {
		return
	}
	s.finalizeSession()
}

// finalizeSession appends the active session to history. Callers must hold
// s.mu and have checked that a session is active.
func (s *Store) finalizeSession() {
	now := s.now()
	session := *s.currentSession
	session.EndTime = &Timestamp{Time: now}
	s.state.StudySessions = append(s.state.StudySessions, session)
	s.currentSession = nil

	if deck := s.findDeck(session.DeckID); deck != nil {
		deck.LastStudied = &Timestamp{Time: now}
	}
}

// CurrentSession returns a copy of the active session, or nil when idle.
func (s *Store) CurrentSession() *StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSession == nil {
		return nil
	}
	session := *s.currentSession
	return &session
}

// Deck returns a copy of the deck with the given id.
func (s *Store) Deck(id string) (Deck, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deck := s.findDeck(id); deck != nil {
		return *deck, true
	}
	return Deck{}, false
}

// DeckByName returns the first deck whose name matches exactly.
func (s *Store) DeckByName(name string) (Deck, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, deck := range s.state.Decks {
		if deck.Name == name {
			return deck, true
		}
	}
	return Deck{}, false
}

// Decks returns a copy of all decks in creation order.
func (s *Store) Decks() []Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Deck(nil), s.state.Decks...)
}

// Card returns a copy of the flashcard with the given id.
func (s *Store) Card(id string) (Flashcard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if card := s.findCard(id); card != nil {
		return *card, true
	}
	return Flashcard{}, false
}

// CardsInDeck returns copies of all cards owned by a deck.
func (s *Store) CardsInDeck(deckID string) []Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardsInDeck(deckID)
}

// cardsInDeck collects the deck's cards. Callers must hold s.mu.
func (s *Store) cardsInDeck(deckID string) []Flashcard {
	var cards []Flashcard
	for _, card := range s.state.Flashcards {
		if card.DeckID == deckID {
			cards = append(cards, card)
		}
	}
	return cards
}

// Sessions returns a copy of the finished session history.
func (s *Store) Sessions() []StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StudySession(nil), s.state.StudySessions...)
}

func (s *Store) findDeck(id string) *Deck {
	for i := range s.state.Decks {
		if s.state.Decks[i].ID == id {
			return &s.state.Decks[i]
		}
	}
	return nil
}

func (s *Store) findCard(id string) *Flashcard {
	for i := range s.state.Flashcards {
		if s.state.Flashcards[i].ID == id {
			return &s.state.Flashcards[i]
		}
	}
	return nil
}

// refreshMasteredCount recomputes the deck's denormalized mastered counter.
// Callers must hold s.mu.
func (s *Store) refreshMasteredCount(deckID string) {
	deck := s.findDeck(deckID)
	if deck == nil {
		return
	}

	mastered := 0
	for _, card := range s.state.Flashcards {
		if card.DeckID == deckID && isMastered(card) {
			mastered++
		}
	}
	deck.MasteredCards = mastered
}
