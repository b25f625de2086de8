// Package output holds the styled terminal rendering for the books CLI.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bookshelf/internal/book"
	"bookshelf/internal/platform/isbndb"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(24)
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Print(successStyle.Render("✓ "))
	fmt.Printf(format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Print(errorStyle.Render("✗ "))
	fmt.Printf(format+"\n", args...)
}

// Muted prints a muted message
func Muted(format string, args ...interface{}) {
	fmt.Print(mutedStyle.Render(fmt.Sprintf(format, args...)))
	fmt.Println()
}

func field(label, value string) {
	fmt.Println(labelStyle.Render(label) + " " + value)
}

// Record prints the full fetched bibliographic record.
func Record(rec isbndb.Record) {
	field("Title", rec.Title)
	if rec.TitleLong != rec.Title {
		field("Title (Long)", rec.TitleLong)
	}
	field("Author(s)", strings.Join(rec.Authors, "; "))
	field("Date Published", rec.DatePublished)
	field("Binding", rec.Binding)
	field("Edition", rec.Edition)
	field("Pages", strconv.Itoa(rec.Pages))
	field("Publisher", rec.Publisher)
	field("Language", rec.Language)
	field("Subjects", orNA(strings.Join(rec.Subjects, ", ")))
	field("Synopsis", orNA(rec.Synopsis))
	field("MSRP", strconv.FormatFloat(rec.MSRP, 'f', -1, 64))
	field("ISBN13", rec.ISBN13)
	field("ISBN", rec.ISBN)
	field("ISBN10", rec.ISBN10)
	field("Dimensions", rec.Dimensions)
}

// Model prints the editable model the way the add flow shows it before
// asking to edit.
func Model(m book.AddBookModel) {
	field("Title", m.Title)
	field("Author(s)", m.Authors)
	field("Edition", m.Edition)
	field("Date Published", m.DatePublished)
	field("Binding", m.Binding)
	field("ISBN", m.ISBN)
	field("Pages", strconv.Itoa(m.Pages))
	field("Owned", strconv.FormatBool(m.Owned))
}

// Book prints one catalogued book as a single list line.
func Book(b book.Book) {
	var authors []string
	for _, a := range b.Authors {
		authors = append(authors, a.Surname+", "+a.Forename)
	}
	fmt.Printf("%s %s (%s, %s) by %s\n",
		mutedStyle.Render(fmt.Sprintf("#%d", b.ID)),
		b.Title, b.Edition, b.DatePublished,
		strings.Join(authors, "; "),
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
