package commands

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"bookshelf/cmd/books/output"
	"bookshelf/internal/book"
	"bookshelf/internal/platform/isbndb"
	"bookshelf/internal/platform/sqlite"
)

var addCmd = &cobra.Command{
	Use:   "add <isbn>",
	Short: "Add a book to the catalogue",
	Long: `Add looks the ISBN up on ISBNdb, offers the retrieved details for
editing, and saves the result to the local catalogue.`,
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

		model, err := book.ModelFromRecord(rec)
		if err != nil {
			return err
		}

		output.Muted("Retrieved book with ISBN %s", args[0])
		output.Model(model)

		if confirm("Edit details before saving?") {
			edited, err := editInEditor(book.RenderModel(model))
			if err != nil {
				return err
			}
			model, err = book.ParseModel(edited)
			if err != nil {
				return err
			}
		}

		db, err := sqlite.Open(cfg.StorageDir)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := book.NewService(book.NewSQLiteRepo(db))
		saved, err := svc.AddBook(cmd.Context(), model)
		if err != nil {
			return err
		}

		output.Success("saved %q to the catalogue (id %d)", saved.Title, saved.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// editInEditor round-trips the rendered block through $EDITOR.
func editInEditor(content string) (string, error) {
	f, err := os.CreateTemp("", "books-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	edit := exec.Command(editor, f.Name())
	edit.Stdin = os.Stdin
	edit.Stdout = os.Stdout
	edit.Stderr = os.Stderr
	if err := edit.Run(); err != nil {
		return "", fmt.Errorf("run editor %s: %w", editor, err)
	}

	b, err := os.ReadFile(f.Name())
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(b), nil
}
