package flashcards

import (
	"sort"

	"github.com/samber/lo"
)

const (
	// DefaultReviewLimit caps the number of cards handed out per review
	// batch when the caller does not ask for a specific limit.
	DefaultReviewLimit = 20

	masteryMinReviews = 3
	masteryAccuracy   = 0.8
	streakWindow      = 7
)

// DeckStats are the derived, read-only statistics for one deck.
type DeckStats struct {
	TotalCards    int
	MasteredCards int
	DueCards      int

	// AverageAccuracy is a percentage over every review of every card in
	// the deck, 0 when nothing has been reviewed yet.
	AverageAccuracy float64

	// StudyStreak counts the deck's most recent sessions, capped at
	// seven. It is a recent-activity proxy, not a
	// consecutive-calendar-day streak.
	StudyStreak int
}

// OverviewStats aggregates across every deck in the store.
type OverviewStats struct {
	TotalDecks      int
	TotalCards      int
	MasteredCards   int
	DueCards        int
	TotalSessions   int
	AverageAccuracy float64
}

func isMastered(card Flashcard) bool {
	return card.ReviewCount >= masteryMinReviews && card.Accuracy() >= masteryAccuracy
}

// DeckStats computes the deck's statistics at the current time.
// It never mutates state: calling it repeatedly without intervening
// reviews yields identical results.
func (s *Store) DeckStats(deckID string) DeckStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cards := s.cardsInDeck(deckID)

	totalReviews := lo.SumBy(cards, func(card Flashcard) int { return card.ReviewCount })
	totalCorrect := lo.SumBy(cards, func(card Flashcard) int { return card.CorrectCount })

	averageAccuracy := 0.0
	if totalReviews > 0 {
		averageAccuracy = float64(totalCorrect) / float64(totalReviews) * 100
	}

	deckSessions := lo.Filter(s.state.StudySessions, func(session StudySession, _ int) bool {
		return session.DeckID == deckID
	})
	streak := len(recentSessions(deckSessions, streakWindow))

	return DeckStats{
		TotalCards:      len(cards),
		MasteredCards:   lo.CountBy(cards, isMastered),
		DueCards:        lo.CountBy(cards, func(card Flashcard) bool { return card.IsDue(now) }),
		AverageAccuracy: averageAccuracy,
		StudyStreak:     streak,
	}
}

// recentSessions returns up to n history entries, newest first.
func recentSessions(sessions []StudySession, n int) []StudySession {
	sorted := append([]StudySession(nil), sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime.Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// CardsForReview returns the deck's due cards sorted most-overdue first,
// truncated to limit. A non-positive limit falls back to
// DefaultReviewLimit.
func (s *Store) CardsForReview(deckID string, limit int) []Flashcard {
	if limit <= 0 {
		limit = DefaultReviewLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	due := lo.Filter(s.cardsInDeck(deckID), func(card Flashcard, _ int) bool {
		return card.IsDue(now)
	})
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReview.Before(due[j].NextReview.Time)
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return cloneCards(due)
}

// Overview computes store-wide statistics across every deck.
func (s *Store) Overview() OverviewStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cards := s.state.Flashcards

	totalReviews := lo.SumBy(cards, func(card Flashcard) int { return card.ReviewCount })
	totalCorrect := lo.SumBy(cards, func(card Flashcard) int { return card.CorrectCount })

	averageAccuracy := 0.0
	if totalReviews > 0 {
		averageAccuracy = float64(totalCorrect) / float64(totalReviews) * 100
	}

	return OverviewStats{
		TotalDecks:      len(s.state.Decks),
		TotalCards:      len(cards),
		MasteredCards:   lo.CountBy(cards, isMastered),
		DueCards:        lo.CountBy(cards, func(card Flashcard) bool { return card.IsDue(now) }),
		TotalSessions:   len(s.state.StudySessions),
		AverageAccuracy: averageAccuracy,
	}
}

// SessionsForDeck returns the deck's finished sessions, newest first.
func (s *Store) SessionsForDeck(deckID string) []StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := lo.Filter(s.state.StudySessions, func(session StudySession, _ int) bool {
		return session.DeckID == deckID
	})
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime.Time)
	})
	return sessions
}
