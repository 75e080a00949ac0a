package flashcards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateInterval(t *testing.T) {
	tests := []struct {
		name         string
		reviewCount  int
		correctCount int
		correct      bool
		expected     int
	}{
		{
			name:        "first review correct",
			reviewCount: 0,
			correct:     true,
			expected:    1,
		},
		{
			name:        "first review wrong is due again immediately",
			reviewCount: 0,
			correct:     false,
			expected:    0,
		},
		{
			name:         "second review correct",
			reviewCount:  1,
			correctCount: 1,
			correct:      true,
			expected:     6,
		},
		{
			name:        "second review wrong is due again immediately",
			reviewCount: 1,
			correct:     false,
			expected:    0,
		},
		{
			name:         "accuracy 0.8 scales to 14 days",
			reviewCount:  10,
			correctCount: 8,
			correct:      true,
			expected:     14, // round(6 * (2.5 - 0.2))
		},
		{
			name:         "perfect accuracy scales to 15 days",
			reviewCount:  4,
			correctCount: 4,
			correct:      true,
			expected:     15, // round(6 * 2.5)
		},
		{
			name:         "accuracy 0.5 scales to 12 days",
			reviewCount:  2,
			correctCount: 1,
			correct:      true,
			expected:     12, // round(6 * (2.5 - 0.5))
		},
		{
			name:         "zero accuracy still yields at least 9 days when correct",
			reviewCount:  3,
			correctCount: 0,
			correct:      true,
			expected:     9, // round(6 * 1.5)
		},
		{
			name:         "wrong answer resets to one day",
			reviewCount:  10,
			correctCount: 9,
			correct:      false,
			expected:     1,
		},
		{
			name:         "wrong answer on struggling card resets to one day",
			reviewCount:  5,
			correctCount: 1,
			correct:      false,
			expected:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Flashcard{
				ReviewCount:  tt.reviewCount,
				CorrectCount: tt.correctCount,
			}
			assert.Equal(t, tt.expected, CalculateInterval(card, tt.correct))
		})
	}
}

func TestCalculateInterval_Deterministic(t *testing.T) {
	card := Flashcard{ReviewCount: 7, CorrectCount: 5}
	first := CalculateInterval(card, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateInterval(card, true))
	}
}

func TestCalculateInterval_CorrectNeverBelowOneDay(t *testing.T) {
	// After the two introductory reviews, a correct answer always pushes
	// the card out by at least one day regardless of accuracy.
	for reviewCount := 2; reviewCount <= 20; reviewCount++ {
		for correctCount := 0; correctCount <= reviewCount; correctCount++ {
			card := Flashcard{ReviewCount: reviewCount, CorrectCount: correctCount}
			assert.GreaterOrEqual(t, CalculateInterval(card, true), 1,
				"reviewCount=%d correctCount=%d", reviewCount, correctCount)
		}
	}
}

func TestNextReviewAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, now, nextReviewAt(now, 0))
	assert.Equal(t, time.Date(2025, 3, 11, 15, 0, 0, 0, time.UTC), nextReviewAt(now, 1))
	assert.Equal(t, time.Date(2025, 3, 24, 15, 0, 0, 0, time.UTC), nextReviewAt(now, 14))
}
