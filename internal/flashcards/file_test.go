package flashcards

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadState_MissingFile(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Empty(t, state.Decks)
	assert.Empty(t, state.Flashcards)
	assert.Empty(t, state.StudySessions)
}

func TestLoadState_CorruptFileFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yml")
	require.NoError(t, os.WriteFile(path, []byte("decks: [not: valid: yaml"), 0644))

	state, err := LoadState(path)
	require.NoError(t, err, "corrupt storage must not prevent startup")
	assert.Empty(t, state.Decks)
}

func TestSaveState_LoadState_RoundTrip(t *testing.T) {
	created := time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)
	studied := time.Date(2025, 2, 11, 20, 15, 0, 0, time.UTC)
	due := time.Date(2025, 2, 18, 9, 30, 0, 0, time.UTC)

	original := State{
		Decks: []Deck{
			{
				ID:          "deck-1",
				Name:        "Biology",
				Description: "Cells",
				Category:    "Science",
				Color:       "#3B82F6",
				CreatedAt:   NewTimestamp(created),
				LastStudied: &Timestamp{Time: studied},
				TotalCards:  1,
			},
		},
		Flashcards: []Flashcard{
			{
				ID:           "card-1",
				Front:        "What is a ribosome?",
				Back:         "A protein factory",
				DeckID:       "deck-1",
				Difficulty:   DifficultyMedium,
				LastReviewed: &Timestamp{Time: studied},
				NextReview:   NewTimestamp(due),
				ReviewCount:  3,
				CorrectCount: 2,
				CreatedAt:    NewTimestamp(created),
				Tags:         []string{"cells", GeneratedCardTag},
			},
		},
		StudySessions: []StudySession{
			{
				ID:             "session-1",
				DeckID:         "deck-1",
				StartTime:      NewTimestamp(studied),
				EndTime:        &Timestamp{Time: studied.Add(12 * time.Minute)},
				CardsStudied:   5,
				CorrectAnswers: 4,
				AverageTimeMs:  2350.5,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "nested", "state.yml")
	require.NoError(t, SaveState(path, original))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	// Dates must come back as real time values so due comparisons work.
	assert.True(t, loaded.Flashcards[0].NextReview.Equal(due))
	assert.True(t, loaded.Flashcards[0].IsDue(due))
	assert.False(t, loaded.Flashcards[0].IsDue(due.Add(-time.Second)))
}
