package flashcards

import (
	"math"
	"time"
)

const (
	firstIntervalDays  = 1
	secondIntervalDays = 6
	baseIntervalDays   = 6
	maxEasiness        = 2.5
)

// CalculateInterval computes the number of days until a card is next due,
// given the outcome of its latest review.
//
// The counters on the card are the values before this review is applied:
// the interval for the third and later reviews is derived from the card's
// lifetime accuracy as it stood when the answer was given. Callers must
// compute the interval first, then persist the incremented counters together
// with the new due date.
//
// An interval of 0 means the card is due again immediately.
func CalculateInterval(card Flashcard, correct bool) int {
	if card.ReviewCount == 0 {
		if correct {
			return firstIntervalDays
		}
		return 0
	}

	if card.ReviewCount == 1 {
		if correct {
			return secondIntervalDays
		}
		return 0
	}

	if !correct {
		return 1
	}

	accuracy := card.Accuracy()
	interval := int(math.Round(baseIntervalDays * (maxEasiness - (1 - accuracy))))
	if interval < 1 {
		return 1
	}
	return interval
}

// nextReviewAt returns the due date for a card reviewed at now with the
// given interval. A zero interval keeps the card due at the same moment.
func nextReviewAt(now time.Time, intervalDays int) time.Time {
	return now.AddDate(0, 0, intervalDays)
}
