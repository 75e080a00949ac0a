package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/cardbox/internal/cli"
	"github.com/at-ishikawa/cardbox/internal/pdf"
)

func newStatsCommand() *cobra.Command {
	var markdownFile string
	var toPDF bool
	command := &cobra.Command{
		Use:   "stats [deck]",
		Short: "Show study statistics for one deck or everything",
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

			if len(args) == 1 {
				deck, err := resolveDeck(store, args[0])
				if err != nil {
					return err
				}
				return cli.RunDeckReport(os.Stdout, store, deck.ID)
			}

			if markdownFile != "" {
				markdown := cli.MarkdownOverviewReport(store)
				if !toPDF {
					if err := os.WriteFile(markdownFile, []byte(markdown), 0644); err != nil {
						return fmt.Errorf("os.WriteFile(%s) > %w", markdownFile, err)
					}
					fmt.Printf("Wrote report to %s\n", markdownFile)
					return nil
				}

				pdfPath, err := pdf.WriteMarkdownReport(markdownFile, markdown)
				if err != nil {
					return fmt.Errorf("pdf.WriteMarkdownReport() > %w", err)
				}
				fmt.Printf("Wrote report to %s\n", pdfPath)
				return nil
			}

			return cli.RunOverviewReport(os.Stdout, store)
		},
	}
	command.Flags().StringVar(&markdownFile, "markdown", "", "write the overview report to a markdown file")
	command.Flags().BoolVar(&toPDF, "pdf", false, "also convert the markdown report to PDF (requires --markdown)")
	return command
}
