package flashcards

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftCardsFromText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []CardDraft
	}{
		{
			name: "sentence becomes question around its middle word",
			text: "The mitochondria is the powerhouse of the cell.",
			expected: []CardDraft{
				{
					Front: `What is the key concept in: "The mitochondria is the powerhouse of the cell"?`,
					Back:  "The key concept is: powerhouse",
				},
			},
		},
		{
			name: "splits on terminal punctuation",
			text: "Water boils at one hundred degrees celsius! Does ice melt at zero degrees celsius? Gravity pulls objects toward the earth center.",
			expected: []CardDraft{
				{
					Front: `What is the key concept in: "Water boils at one hundred degrees celsius"?`,
					Back:  "The key concept is: one",
				},
				{
					Front: `What is the key concept in: "Does ice melt at zero degrees celsius"?`,
					Back:  "The key concept is: at",
				},
				{
					Front: `What is the key concept in: "Gravity pulls objects toward the earth center"?`,
					Back:  "The key concept is: toward",
				},
			},
		},
		{
			name:     "short fragments are discarded",
			text:     "Too short. No. Yes.",
			expected: nil,
		},
		{
			name:     "sentences with five or fewer words are discarded",
			text:     "Photosynthesis needs light energy.",
			expected: nil,
		},
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DraftCardsFromText(tt.text))
		})
	}
}

func TestDraftCardsFromText_BoundedAndDeterministic(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 25; i++ {
		sb.WriteString(fmt.Sprintf("Sentence number %d has more than five words in it. ", i))
	}
	text := sb.String()

	drafts := DraftCardsFromText(text)
	assert.Len(t, drafts, 10, "output is capped at ten cards")
	assert.Equal(t, drafts, DraftCardsFromText(text), "same input yields same drafts")
}

func TestStore_GenerateFlashcardsFromText(t *testing.T) {
	store, _ := newTestStore(t, time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	deckID, err := store.CreateDeck("Science", "", "", "")
	require.NoError(t, err)

	ids, err := store.GenerateFlashcardsFromText(deckID,
		"The mitochondria is the powerhouse of the cell. Water boils at one hundred degrees celsius.")
	require.NoError(t, err)
	require.Len(t, ids, 2)

	deck, _ := store.Deck(deckID)
	assert.Equal(t, 2, deck.TotalCards, "generated cards bump the deck counter")

	for _, id := range ids {
		card, ok := store.Card(id)
		require.True(t, ok)
		assert.Equal(t, []string{GeneratedCardTag}, card.Tags)
		assert.Equal(t, DifficultyMedium, card.Difficulty)
		assert.True(t, card.IsDue(store.now()), "generated cards start due")
	}
}
