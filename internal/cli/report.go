package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/at-ishikawa/cardbox/internal/flashcards"
)

const deletedDeckLabel = "(deleted deck)"

// deckName resolves a deck id from session history. Decks can be deleted
// while their sessions remain, so missing ids get a placeholder.
func deckName(store *flashcards.Store, deckID string) string {
	if deck, ok := store.Deck(deckID); ok {
		return deck.Name
	}
	return deletedDeckLabel
}

// RunDeckReport displays one deck's statistics and recent sessions.
func RunDeckReport(writer io.Writer, store *flashcards.Store, deckID string) error {
	deck, ok := store.Deck(deckID)
	if !ok {
		return fmt.Errorf("deck %s not found", deckID)
	}
	stats := store.DeckStats(deckID)

	fmt.Fprintf(writer, "Deck Report: %s\n", deck.Name)
	fmt.Fprintln(writer, strings.Repeat("=", len("Deck Report: ")+len(deck.Name)))
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%-18s %d\n", "Total cards:", stats.TotalCards)
	fmt.Fprintf(writer, "%-18s %d\n", "Mastered cards:", stats.MasteredCards)
	fmt.Fprintf(writer, "%-18s %d\n", "Due cards:", stats.DueCards)
	fmt.Fprintf(writer, "%-18s %.1f%%\n", "Average accuracy:", stats.AverageAccuracy)
	fmt.Fprintf(writer, "%-18s %d recent session(s)\n", "Study streak:", stats.StudyStreak)

	sessions := store.SessionsForDeck(deckID)
	if len(sessions) == 0 {
		return nil
	}

	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%-20s  %-8s  %-8s  %-10s\n", "Started", "Cards", "Correct", "Avg Time")
	fmt.Fprintf(writer, "%-20s  %-8s  %-8s  %-10s\n", "-------", "-----", "-------", "--------")
	for _, session := range sessions {
		fmt.Fprintf(writer, "%-20s  %-8d  %-8d  %-10s\n",
			session.StartTime.Format("2006-01-02 15:04"),
			session.CardsStudied,
			session.CorrectAnswers,
			fmt.Sprintf("%.1fs", session.AverageTimeMs/1000),
		)
	}
	return nil
}

// RunOverviewReport displays statistics aggregated across every deck.
func RunOverviewReport(writer io.Writer, store *flashcards.Store) error {
	overview := store.Overview()

	fmt.Fprintln(writer, "Study Overview")
	fmt.Fprintln(writer, "==============")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%-18s %d\n", "Decks:", overview.TotalDecks)
	fmt.Fprintf(writer, "%-18s %d\n", "Cards:", overview.TotalCards)
	fmt.Fprintf(writer, "%-18s %d\n", "Mastered:", overview.MasteredCards)
	fmt.Fprintf(writer, "%-18s %d\n", "Due now:", overview.DueCards)
	fmt.Fprintf(writer, "%-18s %d\n", "Sessions:", overview.TotalSessions)
	fmt.Fprintf(writer, "%-18s %.1f%%\n", "Average accuracy:", overview.AverageAccuracy)

	decks := store.Decks()
	if len(decks) == 0 {
		return nil
	}

	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%-24s  %-8s  %-10s  %-8s\n", "Deck", "Cards", "Mastered", "Due")
	fmt.Fprintf(writer, "%-24s  %-8s  %-10s  %-8s\n", "----", "-----", "--------", "---")
	for _, deck := range decks {
		stats := store.DeckStats(deck.ID)
		fmt.Fprintf(writer, "%-24s  %-8d  %-10d  %-8d\n", deck.Name, stats.TotalCards, stats.MasteredCards, stats.DueCards)
	}
	return nil
}

// MarkdownOverviewReport renders the overview as markdown for PDF export.
func MarkdownOverviewReport(store *flashcards.Store) string {
	overview := store.Overview()

	var b strings.Builder
	b.WriteString("# Study Overview\n\n")
	fmt.Fprintf(&b, "- Decks: %d\n", overview.TotalDecks)
	fmt.Fprintf(&b, "- Cards: %d\n", overview.TotalCards)
	fmt.Fprintf(&b, "- Mastered: %d\n", overview.MasteredCards)
	fmt.Fprintf(&b, "- Due now: %d\n", overview.DueCards)
	fmt.Fprintf(&b, "- Sessions: %d\n", overview.TotalSessions)
	fmt.Fprintf(&b, "- Average accuracy: %.1f%%\n", overview.AverageAccuracy)

	decks := store.Decks()
	if len(decks) > 0 {
		b.WriteString("\n## Decks\n\n")
		b.WriteString("| Deck | Cards | Mastered | Due | Accuracy |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, deck := range decks {
			stats := store.DeckStats(deck.ID)
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %.1f%% |\n",
				deck.Name, stats.TotalCards, stats.MasteredCards, stats.DueCards, stats.AverageAccuracy)
		}
	}

	sessions := store.Sessions()
	if len(sessions) > 0 {
		b.WriteString("\n## Recent Sessions\n\n")
		b.WriteString("| Started | Deck | Cards | Correct | Avg Time |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, session := range recentFirst(sessions) {
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %.1fs |\n",
				session.StartTime.Format("2006-01-02 15:04"),
				deckName(store, session.DeckID),
				session.CardsStudied,
				session.CorrectAnswers,
				session.AverageTimeMs/1000,
			)
		}
	}
	return b.String()
}

// RunSessionHistory displays finished sessions, newest first. With an empty
// deckID the history of every deck is shown.
func RunSessionHistory(writer io.Writer, store *flashcards.Store, deckID string) error {
	var sessions []flashcards.StudySession
	if deckID != "" {
		sessions = store.SessionsForDeck(deckID)
	} else {
		sessions = recentFirst(store.Sessions())
	}

	if len(sessions) == 0 {
		fmt.Fprintln(writer, "No study sessions recorded yet.")
		return nil
	}

	fmt.Fprintf(writer, "%-20s  %-24s  %-8s  %-8s  %-10s\n", "Started", "Deck", "Cards", "Correct", "Avg Time")
	fmt.Fprintf(writer, "%-20s  %-24s  %-8s  %-8s  %-10s\n", "-------", "----", "-----", "-------", "--------")
	for _, session := range sessions {
		fmt.Fprintf(writer, "%-20s  %-24s  %-8d  %-8d  %-10s\n",
			session.StartTime.Format("2006-01-02 15:04"),
			deckName(store, session.DeckID),
			session.CardsStudied,
			session.CorrectAnswers,
			fmt.Sprintf("%.1fs", session.AverageTimeMs/1000),
		)
	}
	return nil
}

func recentFirst(sessions []flashcards.StudySession) []flashcards.StudySession {
	sorted := append([]flashcards.StudySession(nil), sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime.Time)
	})
	return sorted
}
