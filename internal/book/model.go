package book

import (
	"fmt"
	"strings"

	"bookshelf/internal/platform/isbndb"
)

// firstEdition is the only edition label that lets the adapter assume
// the stated publication date is also the original one.
const firstEdition = "1st"

// AddBookModel is the editable intermediate form of a book: authors and
// publisher are still free text, not yet resolved to catalogue rows. It
// is built from a fetched record or parsed from an edited text block,
// and consumed once when converted into a Book for persistence.
type AddBookModel struct {
	Authors               string `validate:"required"`
	Publisher             string `validate:"required"`
	Title                 string `validate:"required"`
	Edition               string `validate:"required"`
	DatePublished         string `validate:"required"`
	OriginalDatePublished *string
	Price                 *float64
	Binding               string `validate:"required"`
	ISBN                  string `validate:"required"`
	Pages                 int
	Owned                 bool
}

// ModelFromRecord converts a fetched bibliographic record into an
// editable model. The book's long-form title is used; price is left for
// manual entry since the record's list price is not the acquisition
// price, and owned defaults to true. For first editions the stated
// publication date is carried over as the original publication date;
// for later editions it has to be filled in by hand.
func ModelFromRecord(rec isbndb.Record) (AddBookModel, error) {
	if rec.TitleLong == "" {
		return AddBookModel{}, fmt.Errorf("record %s has no long title", rec.ISBN13)
	}

	var originalDate *string
	if rec.Edition == firstEdition {
		date := rec.DatePublished
		originalDate = &date
	}

	return AddBookModel{
		Authors:               strings.Join(rec.Authors, "; "),
		Publisher:             rec.Publisher,
		Title:                 rec.TitleLong,
		Edition:               rec.Edition,
		DatePublished:         rec.DatePublished,
		OriginalDatePublished: originalDate,
		Binding:               rec.Binding,
		ISBN:                  rec.ISBN13,
		Pages:                 rec.Pages,
		Owned:                 true,
	}, nil
}

// Book converts the model into an entity graph with unresolved
// identifiers. Whether the publisher or any author already exists in
// the store is not known yet, so every ID starts at 0; the repository
// assigns them during persistence.
func (m AddBookModel) Book() (Book, error) {
	var authors []Author
	for _, part := range strings.Split(m.Authors, ";") {
		surname, forename, ok := strings.Cut(part, ",")
		if !ok {
			return Book{}, &ParseError{
				Field:  "authors",
				Reason: fmt.Sprintf("expected %q to be a Surname, Forename pair", strings.TrimSpace(part)),
			}
		}
		authors = append(authors, Author{
			Forename: strings.TrimSpace(forename),
			Surname:  strings.TrimSpace(surname),
		})
	}

	return Book{
		Authors:               authors,
		Publisher:             Publisher{Name: m.Publisher},
		Title:                 m.Title,
		Edition:               m.Edition,
		DatePublished:         m.DatePublished,
		OriginalDatePublished: m.OriginalDatePublished,
		Price:                 m.Price,
		Binding:               m.Binding,
		ISBN:                  m.ISBN,
		Pages:                 m.Pages,
		Owned:                 m.Owned,
	}, nil
}
