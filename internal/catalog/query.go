package catalog

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Search returns books whose title or author name contains query, or whose
// ISBN equals query. Matching is case-sensitive; results follow registration
// order.
func (c *Catalog) Search(query string) []types.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.filterBooks(func(b *types.Book) bool {
		return strings.Contains(b.Title, query) ||
			strings.Contains(b.Author, query) ||
			b.ISBN == query
	})
}

// AvailableBooks returns books with at least one free copy.
func (c *Catalog) AvailableBooks() []types.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.filterBooks(func(b *types.Book) bool {
		return b.Available()
	})
}

// Books returns every registered book.
func (c *Catalog) Books() []types.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.filterBooks(func(*types.Book) bool { return true })
}

// BooksByGenre returns the books filed under genre, using the genre index.
func (c *Catalog) BooksByGenre(genre string) []types.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set := c.genres[genre]
	return c.filterBooks(func(b *types.Book) bool {
		_, ok := set[b.ISBN]
		return ok
	})
}

// CustomerBooks returns the books the customer holds, in borrow order.
// Returns ErrNotFound for an unknown customer.
func (c *Catalog) CustomerBooks(customerID int) ([]types.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cust, ok := c.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", customerID, types.ErrNotFound)
	}

	books := make([]types.Book, 0, len(cust.Loans))
	for _, loan := range cust.Loans {
		books = append(books, *c.books[loan.ISBN])
	}
	return books, nil
}

// Recommend returns books that share a genre with something the customer
// currently holds and that the customer does not hold. No ranking is applied.
// Returns ErrNotFound for an unknown customer.
func (c *Catalog) Recommend(customerID int) ([]types.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cust, ok := c.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", customerID, types.ErrNotFound)
	}

	wanted := make(map[string]struct{})
	for isbn := range cust.held {
		wanted[c.books[isbn].Genre] = struct{}{}
	}

	return c.filterBooks(func(b *types.Book) bool {
		if _, held := cust.held[b.ISBN]; held {
			return false
		}
		_, ok := wanted[b.Genre]
		return ok
	}), nil
}

// Book returns the book registered under isbn.
func (c *Catalog) Book(isbn string) (types.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.books[isbn]
	if !ok {
		return types.Book{}, fmt.Errorf("book %q: %w", isbn, types.ErrNotFound)
	}
	return *b, nil
}

// Customer returns the customer with the given ID.
func (c *Catalog) Customer(customerID int) (types.Customer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cust, ok := c.customers[customerID]
	if !ok {
		return types.Customer{}, fmt.Errorf("customer %d: %w", customerID, types.ErrNotFound)
	}
	return cust.Customer.Clone(), nil
}

// Customers returns every customer in ID order.
func (c *Catalog) Customers() []types.Customer {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.Customer, 0, len(c.customerOrder))
	for _, id := range c.customerOrder {
		out = append(out, c.customers[id].Customer.Clone())
	}
	return out
}

// Author returns the author registered under name.
func (c *Catalog) Author(name string) (types.Author, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.authors[name]
	if !ok {
		return types.Author{}, fmt.Errorf("author %q: %w", name, types.ErrNotFound)
	}
	return a.Clone(), nil
}

// Authors returns every author in first-registration order.
func (c *Catalog) Authors() []types.Author {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.Author, 0, len(c.authorOrder))
	for _, name := range c.authorOrder {
		out = append(out, c.authors[name].Clone())
	}
	return out
}

// Genres returns the genre labels in first-seen order.
func (c *Catalog) Genres() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string{}, c.genreOrder...)
}

// Snapshot copies the whole catalog under one read lock.
func (c *Catalog) Snapshot() types.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := types.Snapshot{
		TakenAt:   c.now(),
		Authors:   make([]types.Author, 0, len(c.authorOrder)),
		Books:     c.filterBooks(func(*types.Book) bool { return true }),
		Customers: make([]types.Customer, 0, len(c.customerOrder)),
		Waitlist:  make(map[string][]int, len(c.waitlist)),
	}
	for _, name := range c.authorOrder {
		snap.Authors = append(snap.Authors, c.authors[name].Clone())
	}
	for _, id := range c.customerOrder {
		snap.Customers = append(snap.Customers, c.customers[id].Customer.Clone())
	}
	for isbn, ids := range c.waitlist {
		snap.Waitlist[isbn] = append([]int{}, ids...)
	}
	return snap
}

// filterBooks returns copies of the books matching keep, in registration
// order. The caller must hold c.mu.
func (c *Catalog) filterBooks(keep func(*types.Book) bool) []types.Book {
	var out []types.Book
	for _, isbn := range c.bookOrder {
		b := c.books[isbn]
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}
