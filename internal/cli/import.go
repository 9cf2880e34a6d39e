package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"trivia-duel/internal/config"
	"trivia-duel/internal/infra/file"
	"trivia-duel/internal/infra/postgres"
)

// NewImportCmd loads a JSON question file into the Postgres question bank.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <questions.json>",
		Short: "Import questions from a JSON file into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := runMigrations(ctx, cfg); err != nil {
				return err
			}

			questions, err := file.Read(args[0])
			if err != nil {
				return err
			}

			db := postgres.OpenDB(cfg.Postgres.URL)
			defer db.Close()

			added, err := postgres.NewImporter(db).Import(ctx, questions)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			log.Printf("imported %d of %d questions from %s", added, len(questions), args[0])
			return nil
		},
	}
}
