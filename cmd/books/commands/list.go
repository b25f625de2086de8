package commands

import (
	"github.com/spf13/cobra"

	"bookshelf/cmd/books/output"
	"bookshelf/internal/book"
	"bookshelf/internal/platform/sqlite"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalogued books",
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

		svc := book.NewService(book.NewSQLiteRepo(db))
		books, err := svc.ListBooks(cmd.Context())
		if err != nil {
			return err
		}

		if len(books) == 0 {
			output.Muted("the catalogue is empty")
			return nil
		}
		for _, b := range books {
			output.Book(b)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
