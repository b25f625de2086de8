package book

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service provides the catalogue business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService creates a new catalogue service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

// AddBook resolves and persists an editable model as a full entity
// graph: the publisher is upserted first, then each author in the order
// they appear in the authors string, then the book row itself. The
// returned Book carries every assigned identifier.
//
// The three writes commit independently; a crash partway through can
// leave publisher or author rows without a book. Those rows are shared,
// append-only and harmless, and a rerun of the same add reuses them.
func (s *Service) AddBook(ctx context.Context, m AddBookModel) (Book, error) {
	if err := s.validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Book{}, &ParseError{Field: fieldName(verrs[0].Field()), Reason: "required value is empty"}
		}
		return Book{}, err
	}

	b, err := m.Book()
	if err != nil {
		return Book{}, err
	}

	b.Publisher.ID, err = s.repo.UpsertPublisher(ctx, b.Publisher.Name)
	if err != nil {
		return Book{}, err
	}
	for i := range b.Authors {
		b.Authors[i].ID, err = s.repo.UpsertAuthor(ctx, b.Authors[i].Forename, b.Authors[i].Surname)
		if err != nil {
			return Book{}, err
		}
	}

	b.ID, err = s.repo.SaveBook(ctx, &b)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

// GetBook returns the full entity graph for a stored book.
func (s *Service) GetBook(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// ListBooks returns every book in the catalogue.
func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// fieldNames maps the model's struct fields to the names used in parse
// errors, e.g. DatePublished -> date_published.
var fieldNames = map[string]string{
	"Authors":       "authors",
	"Publisher":     "publisher",
	"Title":         "title",
	"Edition":       "edition",
	"DatePublished": "date_published",
	"Binding":       "binding",
	"ISBN":          "isbn",
}

func fieldName(structField string) string {
	if name, ok := fieldNames[structField]; ok {
		return name
	}
	return strings.ToLower(structField)
}
