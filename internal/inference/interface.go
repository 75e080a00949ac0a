package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	GenerateCards(ctx context.Context, params GenerateCardsRequest) (GenerateCardsResponse, error)
}

// GenerateCardsRequest holds parameters for generating flashcards from text
type GenerateCardsRequest struct {
	Text     string `json:"text"`
	DeckName string `json:"deck_name,omitempty"` // Optional: lets the model tailor questions to the deck topic
	MaxCards int    `json:"max_cards"`
}

type GenerateCardsResponse struct {
	Cards []GeneratedCard
}

// GeneratedCard represents a single question/answer pair produced by the model
type GeneratedCard struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Tags  []string `json:"tags,omitempty"`
}

const (
	DefaultMaxRetryAttempts = 3
)
