package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bookshelf/cmd/books/output"
	"bookshelf/internal/platform/isbndb"
)

var (
	// Global flags
	storagePath string
)

// Config carries everything the commands need from the environment, so
// nothing below the CLI reads it ambiently.
type Config struct {
	StorageDir string
	APIKey     string
	BaseURL    string
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "books",
	Short: "Personal book catalogue backed by ISBNdb lookups",
	Long: `books keeps a personal catalogue in a local SQLite database.

Records are looked up on ISBNdb by ISBN, can be reviewed and edited
before saving, and are stored with normalized author and publisher rows.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage-path", "", "Custom directory for database storage")
}

// loadConfig assembles the command configuration from flags and the
// environment. A missing ISBNdb key aborts every command, matching the
// contract that the credential is checked at startup.
func loadConfig() (Config, error) {
	// Do not override environment provided by the runtime.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	dir := storagePath
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".books")
	}

	key := os.Getenv("ISBNDB_KEY")
	if key == "" {
		return Config{}, fmt.Errorf("could not obtain an ISBNdb key: set the ISBNDB_KEY environment variable")
	}

	return Config{
		StorageDir: dir,
		APIKey:     key,
		BaseURL:    getEnv("ISBNDB_URL", isbndb.DefaultBaseURL),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
