package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/cardbox/internal/database"
	"github.com/at-ishikawa/cardbox/internal/datasync"
	"github.com/at-ishikawa/cardbox/internal/history"
)

func newSyncCommand() *cobra.Command {
	syncCommand := &cobra.Command{
		Use:   "sync",
		Short: "Copy local study data into the database",
	}

	syncCommand.AddCommand(
		newSyncInitCommand(),
		newSyncExportCommand(),
	)
	return syncCommand
}

func newSyncInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			fmt.Println("Database initialized.")
			return nil
		},
	}
}

func newSyncExportCommand() *cobra.Command {
	var dryRun, updateExisting bool
	command := &cobra.Command{
		Use:   "export",
		Short: "Export decks, cards and sessions to the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			exporter := datasync.NewExporter(
				history.NewDBDeckRepository(db),
				history.NewDBCardRepository(db),
				history.NewDBSessionRepository(db),
				os.Stdout,
			)
			result, err := exporter.Export(cmd.Context(), store.Snapshot(), datasync.ExportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			})
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}

			fmt.Printf("Decks:    %d new, %d updated, %d skipped\n", result.DecksNew, result.DecksUpdated, result.DecksSkipped)
			fmt.Printf("Cards:    %d new, %d updated, %d skipped\n", result.CardsNew, result.CardsUpdated, result.CardsSkipped)
			fmt.Printf("Sessions: %d new, %d skipped\n", result.SessionsNew, result.SessionsSkipped)
			return nil
		},
	}
	command.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be written without writing")
	command.Flags().BoolVar(&updateExisting, "update", false, "update rows that already exist")
	return command
}
