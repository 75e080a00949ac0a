// Package testutil provides shared test helpers for creating config files and state fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardbox/internal/flashcards"
)

// SetupTestConfig creates a minimal config file and the data directory for
// testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "data"), 0755))

	configContent := fmt.Sprintf(`storage:
  file: %s
study:
  review_limit: 20
`,
		filepath.Join(tmpDir, "data", "flashcards.yml"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key
// for tests that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// StateOption configures optional fields when creating a state fixture.
type StateOption func(*stateConfig)

type stateConfig struct {
	dueCards int
	sessions int
}

// WithDueCards sets how many of the fixture deck's cards start due.
func WithDueCards(n int) StateOption {
	return func(cfg *stateConfig) {
		cfg.dueCards = n
	}
}

// WithSessions adds finished study sessions to the fixture history.
func WithSessions(n int) StateOption {
	return func(cfg *stateConfig) {
		cfg.sessions = n
	}
}

// CreateStateFile writes a state fixture with one deck to path and returns
// the generated state. By default the deck has two due cards and no session
// history.
func CreateStateFile(t *testing.T, path string, opts ...StateOption) flashcards.State {
	t.Helper()

	cfg := stateConfig{dueCards: 2}
	for _, opt := range opts {
		opt(&cfg)
	}

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	state := flashcards.State{
		Decks: []flashcards.Deck{
			{ID: "deck-1", Name: "Test Deck", Category: "Testing", Color: "#3B82F6", CreatedAt: flashcards.NewTimestamp(created)},
		},
	}

	for i := 0; i < cfg.dueCards; i++ {
		state.Flashcards = append(state.Flashcards, flashcards.Flashcard{
			ID:         fmt.Sprintf("card-%d", i+1),
			DeckID:     "deck-1",
			Front:      fmt.Sprintf("Question %d", i+1),
			Back:       fmt.Sprintf("Answer %d", i+1),
			Difficulty: flashcards.DifficultyMedium,
			NextReview: flashcards.NewTimestamp(created),
			CreatedAt:  flashcards.NewTimestamp(created),
		})
	}
	state.Decks[0].TotalCards = cfg.dueCards

	for i := 0; i < cfg.sessions; i++ {
		start := flashcards.NewTimestamp(created.Add(time.Duration(i) * time.Hour))
		end := flashcards.NewTimestamp(start.Add(10 * time.Minute))
		state.StudySessions = append(state.StudySessions, flashcards.StudySession{
			ID:             fmt.Sprintf("session-%d", i+1),
			DeckID:         "deck-1",
			StartTime:      start,
			EndTime:        &end,
			CardsStudied:   5,
			CorrectAnswers: 4,
			AverageTimeMs:  2000,
		})
	}

	require.NoError(t, flashcards.SaveState(path, state))
	return state
}
