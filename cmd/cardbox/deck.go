package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/cardbox/internal/flashcards"
)

func newDeckCommand() *cobra.Command {
	deckCommand := &cobra.Command{
		Use:   "deck",
		Short: "Manage decks",
	}

	deckCommand.AddCommand(
		newDeckCreateCommand(),
		newDeckListCommand(),
		newDeckUpdateCommand(),
		newDeckDeleteCommand(),
	)
	return deckCommand
}

func newDeckCreateCommand() *cobra.Command {
	var description, category, deckColor string
	command := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}

			id, err := store.CreateDeck(args[0], description, category, deckColor)
			if err != nil {
				return fmt.Errorf("store.CreateDeck() > %w", err)
			}
			if err := saveStore(cfg, store); err != nil {
				return err
			}

			fmt.Printf("Created deck %q (%s)\n", args[0], id)
			return nil
		},
	}
	command.Flags().StringVar(&description, "description", "", "deck description")
	command.Flags().StringVar(&category, "category", "", "deck category")
	command.Flags().StringVar(&deckColor, "color", "", "deck color as a hex code")
	return command
}

func newDeckListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}

			decks := store.Decks()
			if len(decks) == 0 {
				fmt.Println("No decks yet. Create one with: cardbox deck create <name>")
				return nil
			}

			fmt.Printf("%-24s  %-16s  %-8s  %-10s  %s\n", "Name", "Category", "Cards", "Mastered", "ID")
			for _, deck := range decks {
				fmt.Printf("%-24s  %-16s  %-8d  %-10d  %s\n", deck.Name, deck.Category, deck.TotalCards, deck.MasteredCards, deck.ID)
			}
			return nil
		},
	}
}

func newDeckUpdateCommand() *cobra.Command {
	var name, description, category, deckColor string
	command := &cobra.Command{
		Use:   "update [deck]",
		Short: "Update a deck's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			deck, err := resolveDeck(store, args[0])
			if err != nil {
				return err
			}

			update := flashcards.DeckUpdate{}
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("category") {
				update.Category = &category
			}
			if cmd.Flags().Changed("color") {
				update.Color = &deckColor
			}
			store.UpdateDeck(deck.ID, update)

			if err := saveStore(cfg, store); err != nil {
				return err
			}
			fmt.Printf("Updated deck %q\n", deck.Name)
			return nil
		},
	}
	command.Flags().StringVar(&name, "name", "", "new deck name")
	command.Flags().StringVar(&description, "description", "", "new deck description")
	command.Flags().StringVar(&category, "category", "", "new deck category")
	command.Flags().StringVar(&deckColor, "color", "", "new deck color as a hex code")
	return command
}

func newDeckDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [deck]",
		Short: "Delete a deck and all of its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			deck, err := resolveDeck(store, args[0])
			if err != nil {
				return err
			}

			store.DeleteDeck(deck.ID)
			if err := saveStore(cfg, store); err != nil {
				return err
			}
			fmt.Printf("Deleted deck %q and its cards. Session history is kept.\n", deck.Name)
			return nil
		},
	}
}
