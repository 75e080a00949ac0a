package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/cardbox/internal/cli"
)

func newSessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions [deck]",
		Short: "Show finished study sessions, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}

			deckID := ""
			if len(args) == 1 {
				deck, err := resolveDeck(store, args[0])
				if err != nil {
					return err
				}
				deckID = deck.ID
			}
			return cli.RunSessionHistory(os.Stdout, store, deckID)
		},
	}
}
