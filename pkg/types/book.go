package types

import "fmt"

// Book is a catalog title with a fixed number of physical copies.
type Book struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Year            int    `json:"year"`
	Copies          int    `json:"copies"`
	AvailableCopies int    `json:"available_copies"`
	Genre           string `json:"genre"`
}

// String renders the book as "<title> by <author> (<year>)".
func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%d)", b.Title, b.Author, b.Year)
}

// Available reports whether at least one copy can be lent.
func (b Book) Available() bool {
	return b.AvailableCopies > 0
}

// NewBook carries the fields needed to register a book. The author is
// created on first use; later books by the same name keep the first
// registered birth year.
type NewBook struct {
	ISBN            string `json:"isbn" validate:"required"`
	Title           string `json:"title" validate:"required"`
	AuthorName      string `json:"author" validate:"required"`
	AuthorBirthYear int    `json:"author_birth_year"`
	Year            int    `json:"year"`
	Copies          int    `json:"copies" validate:"gte=0"`
	Genre           string `json:"genre"`
}
