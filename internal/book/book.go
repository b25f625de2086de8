package book

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrDuplicate is returned when a book with the same title and edition
// already exists in the catalogue.
var ErrDuplicate = errors.New("book already exists")

// Author is a persisted author. The (Forename, Surname) pair is the
// natural key; ID is 0 until the row exists.
type Author struct {
	ID       int64  `json:"id"`
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
}

// Publisher is a persisted publisher, keyed by exact name.
type Publisher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book is the full entity graph: the book row together with its
// publisher and its authors in catalogue order.
type Book struct {
	ID                    int64     `json:"id"`
	Authors               []Author  `json:"authors"`
	Publisher             Publisher `json:"publisher"`
	Title                 string    `json:"title"`
	Edition               string    `json:"edition"`
	DatePublished         string    `json:"date_published"`
	OriginalDatePublished *string   `json:"original_date_published,omitempty"`
	Price                 *float64  `json:"price,omitempty"`
	Binding               string    `json:"binding"`
	ISBN                  string    `json:"isbn"`
	Pages                 int       `json:"pages"`
	Owned                 bool      `json:"owned"`
}

// ParseError reports a field that could not be parsed or was missing.
// Field uses the model's own names ("isbn", "price", ...), so callers
// can tell the user which line of an edited block to fix.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("parse %s: invalid value", e.Field)
	}
	return fmt.Sprintf("parse %s: %s", e.Field, e.Reason)
}
