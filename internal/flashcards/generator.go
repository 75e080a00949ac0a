package flashcards

import (
	"fmt"
	"regexp"
	"strings"
)

// GeneratedCardTag marks cards produced by generation rather than entered
// by hand.
const GeneratedCardTag = "auto-generated"

const (
	maxGeneratedCards    = 10
	minSentenceLength    = 10
	minSentenceWordCount = 5
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// CardDraft is a candidate question/answer pair produced by a generator.
type CardDraft struct {
	Front string
	Back  string
}

// DraftCardsFromText splits raw text into candidate question/answer pairs.
//
// This is a heuristic, not NLP: the text is split on sentence-terminal
// punctuation, short fragments are discarded, and the middle word of each
// of the first ten surviving sentences stands in for its key concept.
// The output is deterministic for a given input.
func DraftCardsFromText(text string) []CardDraft {
	var sentences []string
	for _, fragment := range sentenceSplitter.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) > minSentenceLength {
			sentences = append(sentences, fragment)
		}
	}
	if len(sentences) > maxGeneratedCards {
		sentences = sentences[:maxGeneratedCards]
	}

	var drafts []CardDraft
	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		if len(words) <= minSentenceWordCount {
			continue
		}
		keyWord := words[len(words)/2]
		drafts = append(drafts, CardDraft{
			Front: fmt.Sprintf("What is the key concept in: %q?", sentence),
			Back:  fmt.Sprintf("The key concept is: %s", keyWord),
		})
	}
	return drafts
}

// GenerateFlashcardsFromText drafts cards from raw text and appends them to
// the deck, tagged as generated. It returns the ids of the created cards.
func (s *Store) GenerateFlashcardsFromText(deckID, text string) ([]string, error) {
	return s.AddDrafts(deckID, DraftCardsFromText(text))
}

// AddDrafts appends the given drafts to a deck as generated cards.
func (s *Store) AddDrafts(deckID string, drafts []CardDraft) ([]string, error) {
	ids := make([]string, 0, len(drafts))
	for _, draft := range drafts {
		id, err := s.CreateFlashcard(deckID, draft.Front, draft.Back, []string{GeneratedCardTag})
		if err != nil {
			return ids, fmt.Errorf("CreateFlashcard() > %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
