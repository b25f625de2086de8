package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"bookshelf/cmd/books/output"
	"bookshelf/internal/platform/sqlite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := sqlite.Open(cfg.StorageDir)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := sqlite.Migrate(db); err != nil {
			return err
		}

		output.Success("catalogue ready at %s", filepath.Join(cfg.StorageDir, sqlite.DatabaseFile))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
