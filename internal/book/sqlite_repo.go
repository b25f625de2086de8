package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// SQLiteRepo stores the catalogue in a local SQLite database. Every
// write commits within the call; there is no caller-visible transaction
// boundary.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

// UpsertPublisher returns the id of the publisher with this exact name,
// inserting it first if it does not exist yet.
func (r *SQLiteRepo) UpsertPublisher(ctx context.Context, name string) (int64, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO publishers (name) VALUES (?)`, name,
	); err != nil {
		return 0, fmt.Errorf("insert publisher: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM publishers WHERE name = ?`, name,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("select publisher id: %w", err)
	}
	return id, nil
}

// UpsertAuthor returns the id of the author with this exact forename and
// surname, inserting the row first if it does not exist yet.
func (r *SQLiteRepo) UpsertAuthor(ctx context.Context, forename, surname string) (int64, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO authors (forename, surname) VALUES (?, ?)`, forename, surname,
	); err != nil {
		return 0, fmt.Errorf("insert author: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM authors WHERE forename = ? AND surname = ?`, forename, surname,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("select author id: %w", err)
	}
	return id, nil
}

// SaveBook inserts the book row and its author associations in one
// transaction. The publisher and authors must already carry resolved
// identifiers. A (title, edition) collision surfaces as ErrDuplicate.
func (r *SQLiteRepo) SaveBook(ctx context.Context, b *Book) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save book: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO books (
			publisher_id, title, edition,
			date_published, original_date_published, price,
			binding, isbn, pages, owned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Publisher.ID, b.Title, b.Edition,
		b.DatePublished, b.OriginalDatePublished, b.Price,
		b.Binding, b.ISBN, b.Pages, b.Owned,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q edition %q", ErrDuplicate, b.Title, b.Edition)
		}
		return 0, fmt.Errorf("insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("book id: %w", err)
	}

	for _, a := range b.Authors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO books_authors (book_id, author_id) VALUES (?, ?)`, id, a.ID,
		); err != nil {
			return 0, fmt.Errorf("insert book author: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save book: %w", err)
	}
	return id, nil
}

// GetByID loads the book row joined with its publisher, then its
// authors through the association table, preserving insertion order.
func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			books.id, books.title, books.edition, books.date_published,
			books.original_date_published, books.price, books.binding,
			books.isbn, books.pages, books.owned,
			publishers.id, publishers.name
		FROM books
		LEFT JOIN publishers ON books.publisher_id = publishers.id
		WHERE books.id = ?`, id)

	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("scan book %d: %w", id, err)
	}

	b.Authors, err = r.bookAuthors(ctx, id)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

// List returns every book in the catalogue with its publisher and
// authors, ordered by title.
func (r *SQLiteRepo) List(ctx context.Context) ([]Book, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			books.id, books.title, books.edition, books.date_published,
			books.original_date_published, books.price, books.binding,
			books.isbn, books.pages, books.owned,
			publishers.id, publishers.name
		FROM books
		LEFT JOIN publishers ON books.publisher_id = publishers.id
		ORDER BY books.title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	for i := range out {
		out[i].Authors, err = r.bookAuthors(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteRepo) bookAuthors(ctx context.Context, bookID int64) ([]Author, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT authors.id, authors.forename, authors.surname
		FROM authors
		JOIN books_authors ON authors.id = books_authors.author_id
		WHERE books_authors.book_id = ?
		ORDER BY books_authors.rowid ASC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("query book authors: %w", err)
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Forename, &a.Surname); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("author rows: %w", err)
	}
	return authors, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (Book, error) {
	var (
		b            Book
		originalDate sql.NullString
		price        sql.NullFloat64
		publisherID  sql.NullInt64
		publisher    sql.NullString
	)
	if err := row.Scan(
		&b.ID, &b.Title, &b.Edition, &b.DatePublished,
		&originalDate, &price, &b.Binding,
		&b.ISBN, &b.Pages, &b.Owned,
		&publisherID, &publisher,
	); err != nil {
		return Book{}, err
	}

	if originalDate.Valid {
		b.OriginalDatePublished = &originalDate.String
	}
	if price.Valid {
		b.Price = &price.Float64
	}
	b.Publisher = Publisher{ID: publisherID.Int64, Name: publisher.String}
	return b, nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
