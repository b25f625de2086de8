package book

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Labels of the editable text block, in render order. Parsing is keyed
// on the label, not the position, so an edited block may reorder lines.
const (
	labelAuthors               = "Author(s)"
	labelPublisher             = "Publisher"
	labelTitle                 = "Title"
	labelEdition               = "Edition"
	labelDatePublished         = "Date Published"
	labelOriginalDatePublished = "Original Date Published"
	labelPrice                 = "Price"
	labelBinding               = "Binding"
	labelISBN                  = "ISBN"
	labelPages                 = "Pages"
	labelOwned                 = "Owned"
)

func newline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// RenderModel renders the model as an editable text block of eleven
// "Label: value" lines. Optional fields keep their label with an empty
// value so the block always parses back.
func RenderModel(m AddBookModel) string {
	var originalDate, price string
	if m.OriginalDatePublished != nil {
		originalDate = *m.OriginalDatePublished
	}
	if m.Price != nil {
		price = strconv.FormatFloat(*m.Price, 'f', -1, 64)
	}

	lines := []string{
		labelAuthors + ": " + m.Authors,
		labelPublisher + ": " + m.Publisher,
		labelTitle + ": " + m.Title,
		labelEdition + ": " + m.Edition,
		labelDatePublished + ": " + m.DatePublished,
		labelOriginalDatePublished + ": " + originalDate,
		labelPrice + ": " + price,
		labelBinding + ": " + m.Binding,
		labelISBN + ": " + m.ISBN,
		labelPages + ": " + strconv.Itoa(m.Pages),
		labelOwned + ": " + strconv.FormatBool(m.Owned),
	}
	return strings.Join(lines, newline())
}

// ParseModel parses an edited text block back into a model. Both "\n"
// and "\r\n" terminators are accepted. A mistyped label is a hard error
// rather than a silent skip, so editing mistakes surface before
// anything reaches the store.
func ParseModel(s string) (AddBookModel, error) {
	var (
		m         AddBookModel
		authors   *string
		publisher *string
		title     *string
		edition   *string
		datePub   *string
		binding   *string
		isbn      *string
		pages     *int
		owned     *bool
	)

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return AddBookModel{}, &ParseError{Field: key, Reason: "line has no value"}
		}
		value = strings.TrimSpace(value)

		switch key {
		case labelAuthors:
			authors = &value
		case labelPublisher:
			publisher = &value
		case labelTitle:
			title = &value
		case labelEdition:
			edition = &value
		case labelDatePublished:
			datePub = &value
		case labelOriginalDatePublished:
			if value != "" {
				m.OriginalDatePublished = &value
			}
		case labelPrice:
			if value != "" {
				p, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return AddBookModel{}, &ParseError{Field: "price", Reason: fmt.Sprintf("%q is not a number", value)}
				}
				m.Price = &p
			}
		case labelBinding:
			binding = &value
		case labelISBN:
			isbn = &value
		case labelPages:
			p, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return AddBookModel{}, &ParseError{Field: "pages", Reason: fmt.Sprintf("%q is not an unsigned integer", value)}
			}
			n := int(p)
			pages = &n
		case labelOwned:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return AddBookModel{}, &ParseError{Field: "owned", Reason: fmt.Sprintf("%q is not a boolean", value)}
			}
			owned = &b
		default:
			return AddBookModel{}, &ParseError{Field: key, Reason: "unknown key"}
		}
	}

	missing := func(field string) error {
		return &ParseError{Field: field, Reason: "missing required line"}
	}
	switch {
	case authors == nil:
		return AddBookModel{}, missing("authors")
	case publisher == nil:
		return AddBookModel{}, missing("publisher")
	case title == nil:
		return AddBookModel{}, missing("title")
	case edition == nil:
		return AddBookModel{}, missing("edition")
	case datePub == nil:
		return AddBookModel{}, missing("date_published")
	case binding == nil:
		return AddBookModel{}, missing("binding")
	case isbn == nil:
		return AddBookModel{}, missing("isbn")
	case pages == nil:
		return AddBookModel{}, missing("pages")
	case owned == nil:
		return AddBookModel{}, missing("owned")
	}

	m.Authors = *authors
	m.Publisher = *publisher
	m.Title = *title
	m.Edition = *edition
	m.DatePublished = *datePub
	m.Binding = *binding
	m.ISBN = *isbn
	m.Pages = *pages
	m.Owned = *owned
	return m, nil
}
