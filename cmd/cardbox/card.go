package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/cardbox/internal/flashcards"
	"github.com/at-ishikawa/cardbox/internal/inference"
	"github.com/at-ishikawa/cardbox/internal/inference/openai"
)

type DifficultyFlag string

// Set implements pflag.Value.
func (d *DifficultyFlag) Set(v string) error {
	if !flashcards.Difficulty(v).Valid() {
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q",
			v, flashcards.DifficultyEasy, flashcards.DifficultyMedium, flashcards.DifficultyHard)
	}
	*d = DifficultyFlag(v)
	return nil
}

// String implements pflag.Value.
func (d *DifficultyFlag) String() string {
	if d == nil {
		return ""
	}
	return string(*d)
}

// Type implements pflag.Value.
func (d *DifficultyFlag) Type() string {
	return "DifficultyFlag"
}

var (
	_ pflag.Value = (*DifficultyFlag)(nil)
)

func newCardCommand() *cobra.Command {
	cardCommand := &cobra.Command{
		Use:   "card",
		Short: "Manage flashcards",
	}

	cardCommand.AddCommand(
		newCardAddCommand(),
		newCardListCommand(),
		newCardUpdateCommand(),
		newCardDeleteCommand(),
		newCardGenerateCommand(),
	)
	return cardCommand
}

func newCardAddCommand() *cobra.Command {
	var tags []string
	command := &cobra.Command{
		Use:   "add [deck] [front] [back]",
		Short: "Add a flashcard to a deck",
		Args:  cobra.ExactArgs(3),
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

			id, err := store.CreateFlashcard(deck.ID, args[1], args[2], tags)
			if err != nil {
				return fmt.Errorf("store.CreateFlashcard() > %w", err)
			}
			if err := saveStore(cfg, store); err != nil {
				return err
			}
			fmt.Printf("Added card %s to deck %q\n", id, deck.Name)
			return nil
		},
	}
	command.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	return command
}

func newCardListCommand() *cobra.Command {
	var dueOnly bool
	command := &cobra.Command{
		Use:   "list [deck]",
		Short: "List a deck's flashcards",
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

			var cards []flashcards.Flashcard
			if dueOnly {
				cards = store.CardsForReview(deck.ID, cfg.Study.ReviewLimit)
			} else {
				cards = store.CardsInDeck(deck.ID)
			}
			if len(cards) == 0 {
				fmt.Println("No cards found.")
				return nil
			}

			fmt.Printf("%-40s  %-8s  %-10s  %-12s  %s\n", "Front", "Reviews", "Accuracy", "Next Review", "ID")
			for _, card := range cards {
				front := card.Front
				if len(front) > 40 {
					front = front[:37] + "..."
				}
				fmt.Printf("%-40s  %-8d  %-10s  %-12s  %s\n",
					front,
					card.ReviewCount,
					fmt.Sprintf("%.0f%%", card.Accuracy()*100),
					card.NextReview.Format("2006-01-02"),
					card.ID,
				)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&dueOnly, "due", false, "only show cards due for review")
	return command
}

func newCardUpdateCommand() *cobra.Command {
	var front, back string
	var difficulty DifficultyFlag
	var tags []string
	command := &cobra.Command{
		Use:   "update [card-id]",
		Short: "Update a flashcard's fields",
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
			if _, ok := store.Card(args[0]); !ok {
				return fmt.Errorf("card %q not found", args[0])
			}

			update := flashcards.CardUpdate{}
			if cmd.Flags().Changed("front") {
				update.Front = &front
			}
			if cmd.Flags().Changed("back") {
				update.Back = &back
			}
			if cmd.Flags().Changed("difficulty") {
				d := flashcards.Difficulty(difficulty)
				update.Difficulty = &d
			}
			if cmd.Flags().Changed("tags") {
				update.Tags = &tags
			}
			store.UpdateFlashcard(args[0], update)

			if err := saveStore(cfg, store); err != nil {
				return err
			}
			fmt.Printf("Updated card %s\n", args[0])
			return nil
		},
	}
	command.Flags().StringVar(&front, "front", "", "new front text")
	command.Flags().StringVar(&back, "back", "", "new back text")
	command.Flags().Var(&difficulty, "difficulty", "easy, medium or hard")
	command.Flags().StringSliceVar(&tags, "tags", nil, "replacement tags")
	return command
}

func newCardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [card-id]",
		Short: "Delete a flashcard",
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
			if _, ok := store.Card(args[0]); !ok {
				return fmt.Errorf("card %q not found", args[0])
			}

			store.DeleteFlashcard(args[0])
			if err := saveStore(cfg, store); err != nil {
				return err
			}
			fmt.Printf("Deleted card %s\n", args[0])
			return nil
		},
	}
}

func newCardGenerateCommand() *cobra.Command {
	var inputFile string
	var useAI bool
	command := &cobra.Command{
		Use:   "generate [deck] [text]",
		Short: "Generate flashcards from raw text",
		Long: `Generate flashcards from raw text, either with the built-in sentence
heuristic or, with --ai, by asking OpenAI for question/answer pairs.
Pass the text as an argument or point --file at a text file.`,
		Args: cobra.RangeArgs(1, 2),
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

			text := ""
			if len(args) == 2 {
				text = args[1]
			}
			if inputFile != "" {
				content, err := os.ReadFile(inputFile)
				if err != nil {
					return fmt.Errorf("os.ReadFile(%s) > %w", inputFile, err)
				}
				text = string(content)
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no text given: pass it as an argument or with --file")
			}

			var ids []string
			if useAI {
				ids, err = generateWithAI(cmd, cfg.OpenAI.APIKey, cfg.OpenAI.Model, store, deck, text)
			} else {
				ids, err = store.GenerateFlashcardsFromText(deck.ID, text)
			}
			if err != nil {
				return err
			}

			if err := saveStore(cfg, store); err != nil {
				return err
			}
			fmt.Printf("Generated %d card(s) in deck %q\n", len(ids), deck.Name)
			return nil
		},
	}
	command.Flags().StringVar(&inputFile, "file", "", "read the source text from a file")
	command.Flags().BoolVar(&useAI, "ai", false, "generate cards with OpenAI instead of the heuristic")
	return command
}

func generateWithAI(cmd *cobra.Command, apiKey, model string, store *flashcards.Store, deck flashcards.Deck, text string) ([]string, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for --ai")
	}
	fmt.Printf("Using OpenAI provider (model: %s)\n", model)
	openaiClient := openai.NewClient(apiKey, model, inference.DefaultMaxRetryAttempts)
	defer func() {
		_ = openaiClient.Close()
	}()

	response, err := openaiClient.GenerateCards(cmd.Context(), inference.GenerateCardsRequest{
		Text:     text,
		DeckName: deck.Name,
		MaxCards: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("openaiClient.GenerateCards() > %w", err)
	}

	drafts := make([]flashcards.CardDraft, 0, len(response.Cards))
	for _, card := range response.Cards {
		drafts = append(drafts, flashcards.CardDraft{Front: card.Front, Back: card.Back})
	}
	ids, err := store.AddDrafts(deck.ID, drafts)
	if err != nil {
		return nil, fmt.Errorf("store.AddDrafts() > %w", err)
	}
	return ids, nil
}
