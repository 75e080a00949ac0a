package main

import (
	"fmt"

	"github.com/at-ishikawa/cardbox/internal/config"
	"github.com/at-ishikawa/cardbox/internal/flashcards"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loader.Load() > %w", err)
	}
	return cfg, nil
}

func loadStore(cfg *config.Config) (*flashcards.Store, error) {
	state, err := flashcards.LoadState(cfg.Storage.File)
	if err != nil {
		return nil, fmt.Errorf("flashcards.LoadState() > %w", err)
	}
	return flashcards.NewStoreFromState(state), nil
}

func saveStore(cfg *config.Config, store *flashcards.Store) error {
	if err := flashcards.SaveState(cfg.Storage.File, store.Snapshot()); err != nil {
		return fmt.Errorf("flashcards.SaveState() > %w", err)
	}
	return nil
}

// resolveDeck accepts either a deck name or a deck id.
func resolveDeck(store *flashcards.Store, nameOrID string) (flashcards.Deck, error) {
	if deck, ok := store.DeckByName(nameOrID); ok {
		return deck, nil
	}
	if deck, ok := store.Deck(nameOrID); ok {
		return deck, nil
	}
	return flashcards.Deck{}, fmt.Errorf("deck %q not found", nameOrID)
}
