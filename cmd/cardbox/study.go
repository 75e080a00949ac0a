package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/cardbox/internal/cli"
)

func newStudyCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "study [deck]",
		Short: "Start an interactive study session for a deck",
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

			reviewLimit := cfg.Study.ReviewLimit
			if cmd.Flags().Changed("limit") {
				reviewLimit = limit
			}

			studyCLI := cli.NewStudySessionCLI(store, cfg.Storage.File, reviewLimit)
			return studyCLI.Run(cmd.Context(), deck.ID)
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum cards per session (defaults to study.review_limit)")
	return command
}
