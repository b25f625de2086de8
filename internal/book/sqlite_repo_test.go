package book

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/platform/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(db))
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestSQLiteRepo_UpsertPublisher(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepo(db)
	ctx := context.Background()

	id, err := repo.UpsertPublisher(ctx, "Crown")
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Upserting the same natural key again must return the same id
	// and leave exactly one row behind.
	again, err := repo.UpsertPublisher(ctx, "Crown")
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, 1, countRows(t, db, "publishers"))

	other, err := repo.UpsertPublisher(ctx, "Carlton Publishing Group")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, countRows(t, db, "publishers"))
}

func TestSQLiteRepo_UpsertAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepo(db)
	ctx := context.Background()

	id, err := repo.UpsertAuthor(ctx, "Simon", "Reeve")
	require.NoError(t, err)
	assert.NotZero(t, id)

	again, err := repo.UpsertAuthor(ctx, "Simon", "Reeve")
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, 1, countRows(t, db, "authors"))

	// The natural key is the full pair, so a shared surname is a new row.
	other, err := repo.UpsertAuthor(ctx, "John", "Reeve")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, countRows(t, db, "authors"))
}

func savedBook(t *testing.T, repo *SQLiteRepo) Book {
	t.Helper()
	ctx := context.Background()

	price := 20.0
	originalDate := "1999"
	b := Book{
		Authors: []Author{{Forename: "Simon", Surname: "Reeve"}},
		Publisher: Publisher{
			Name: "Carlton Publishing Group",
		},
		Title:                 "The New Jackals: Osama Bin Laden and the Future of Terrorism",
		Edition:               "2nd",
		DatePublished:         "2001",
		OriginalDatePublished: &originalDate,
		Price:                 &price,
		Binding:               "Paperback",
		ISBN:                  "9780233050485",
		Pages:                 352,
		Owned:                 true,
	}

	var err error
	b.Publisher.ID, err = repo.UpsertPublisher(ctx, b.Publisher.Name)
	require.NoError(t, err)
	b.Authors[0].ID, err = repo.UpsertAuthor(ctx, b.Authors[0].Forename, b.Authors[0].Surname)
	require.NoError(t, err)
	b.ID, err = repo.SaveBook(ctx, &b)
	require.NoError(t, err)
	return b
}

func TestSQLiteRepo_SaveBook(t *testing.T) {
	t.Run("assigns an id and persists the association rows", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSQLiteRepo(db)

		b := savedBook(t, repo)
		assert.NotZero(t, b.ID)
		assert.Equal(t, 1, countRows(t, db, "books"))
		assert.Equal(t, 1, countRows(t, db, "books_authors"))
	})

	t.Run("rejects a duplicate title and edition", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSQLiteRepo(db)
		ctx := context.Background()

		first := savedBook(t, repo)

		dup := first
		dup.ID = 0
		_, err := repo.SaveBook(ctx, &dup)
		assert.ErrorIs(t, err, ErrDuplicate)

		// The failed save must not touch the original.
		kept, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Title, kept.Title)
		assert.Equal(t, 1, countRows(t, db, "books"))
		assert.Equal(t, 1, countRows(t, db, "books_authors"))
	})

	t.Run("allows the same title in a different edition", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSQLiteRepo(db)
		ctx := context.Background()

		first := savedBook(t, repo)

		next := first
		next.ID = 0
		next.Edition = "3rd"
		id, err := repo.SaveBook(ctx, &next)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, id)
	})
}

func TestSQLiteRepo_GetByID(t *testing.T) {
	t.Run("returns the full entity graph", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSQLiteRepo(db)

		saved := savedBook(t, repo)

		got, err := repo.GetByID(context.Background(), saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("preserves author order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSQLiteRepo(db)
		ctx := context.Background()

		b := Book{
			Authors: []Author{
				{Forename: "Jim", Surname: "Dwyer"},
				{Forename: "Deidre", Surname: "Murphy"},
				{Forename: "Peg", Surname: "Tyre"},
				{Forename: "David", Surname: "Kocieniewski"},
			},
			Publisher:     Publisher{Name: "Crown"},
			Title:         "Two Seconds Under the World",
			Edition:       "1st",
			DatePublished: "1997",
			Binding:       "Hardcover",
			ISBN:          "9780517597675",
			Pages:         322,
			Owned:         true,
		}

		var err error
		b.Publisher.ID, err = repo.UpsertPublisher(ctx, b.Publisher.Name)
		require.NoError(t, err)
		for i := range b.Authors {
			b.Authors[i].ID, err = repo.UpsertAuthor(ctx, b.Authors[i].Forename, b.Authors[i].Surname)
			require.NoError(t, err)
		}
		b.ID, err = repo.SaveBook(ctx, &b)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, got.Authors, 4)
		for i, surname := range []string{"Dwyer", "Murphy", "Tyre", "Kocieniewski"} {
			assert.Equal(t, surname, got.Authors[i].Surname)
		}
	})

	t.Run("returns ErrNotFound for an unknown id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSQLiteRepo(db)

		_, err := repo.GetByID(context.Background(), 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSQLiteRepo_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepo(db)
	ctx := context.Background()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	saved := savedBook(t, repo)

	books, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, saved, books[0])
}
