package commands

import (
	"github.com/spf13/cobra"

	"bookshelf/cmd/books/output"
	"bookshelf/internal/platform/isbndb"
)

var getCmd = &cobra.Command{
	Use:   "get <isbn>",
	Short: "Get the ISBNdb record for a book",
	Long: `Get prints the ISBNdb record for a book without saving anything
to the local catalogue.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := isbndb.NewClient(cfg.BaseURL, cfg.APIKey)
		rec, err := client.GetBookByISBN(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		output.Record(rec)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
