// Package catalog implements the library catalog aggregate: books, authors,
// customers, loans, the genre index, and per-book waitlists.
//
// A single RWMutex guards the whole aggregate because borrow and return touch
// a book and a customer that must change together. Every entity handed back
// to callers is a copy.
package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Catalog owns all catalog state. The zero value is not usable; call New.
type Catalog struct {
	mu sync.RWMutex

	books     map[string]*types.Book
	bookOrder []string

	authors     map[string]*types.Author
	authorOrder []string

	customers      map[int]*customerRecord
	customerOrder  []int
	nextCustomerID int

	// genre -> set of ISBNs; genreOrder keeps first-seen order for listing.
	genres     map[string]map[string]struct{}
	genreOrder []string

	waitlist map[string][]int

	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// customerRecord pairs the customer with the set of ISBNs it holds so
// membership checks do not scan the loan list.
type customerRecord struct {
	types.Customer
	held map[string]struct{}
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock sets the time source used to stamp loans and compute late returns.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// WithLogger sets the logger for state changes and rejected operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithIDGenerator sets the function producing loan IDs.
func WithIDGenerator(newID func() string) Option {
	return func(c *Catalog) {
		c.newID = newID
	}
}

// New returns an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		books:          make(map[string]*types.Book),
		authors:        make(map[string]*types.Author),
		customers:      make(map[int]*customerRecord),
		nextCustomerID: 1,
		genres:         make(map[string]map[string]struct{}),
		waitlist:       make(map[string][]int),
		now:            time.Now,
		newID:          generateUUID,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generateUUID generates a new UUID v7 for loan IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// AddBook registers a new book. The author is looked up by name and created
// on first use; an existing author keeps its original birth year.
// Returns ErrDuplicateKey if the ISBN is already registered and
// ErrInvalidArgument if the input fails validation.
func (c *Catalog) AddBook(nb types.NewBook) error {
	if err := types.Validate(nb); err != nil {
		c.logger.Info("add book rejected", "isbn", nb.ISBN, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.books[nb.ISBN]; ok {
		c.logger.Info("add book rejected", "isbn", nb.ISBN, "error", types.ErrDuplicateKey)
		return fmt.Errorf("isbn %q: %w", nb.ISBN, types.ErrDuplicateKey)
	}

	author, ok := c.authors[nb.AuthorName]
	if !ok {
		author = &types.Author{Name: nb.AuthorName, BirthYear: nb.AuthorBirthYear}
		c.authors[nb.AuthorName] = author
		c.authorOrder = append(c.authorOrder, nb.AuthorName)
		c.logger.Debug("author created", "author", nb.AuthorName, "birth_year", nb.AuthorBirthYear)
	}

	book := &types.Book{
		ISBN:            nb.ISBN,
		Title:           nb.Title,
		Author:          author.Name,
		Year:            nb.Year,
		Copies:          nb.Copies,
		AvailableCopies: nb.Copies,
		Genre:           nb.Genre,
	}
	c.books[book.ISBN] = book
	c.bookOrder = append(c.bookOrder, book.ISBN)
	author.ISBNs = append(author.ISBNs, book.ISBN)

	set, ok := c.genres[book.Genre]
	if !ok {
		set = make(map[string]struct{})
		c.genres[book.Genre] = set
		c.genreOrder = append(c.genreOrder, book.Genre)
	}
	set[book.ISBN] = struct{}{}

	c.logger.Debug("book added", "isbn", book.ISBN, "title", book.Title, "copies", book.Copies)
	return nil
}

// RegisterCustomer stores a new customer and returns its ID. IDs come from a
// counter starting at 1 and are never reused.
func (c *Catalog) RegisterCustomer(nc types.NewCustomer) (int, error) {
	if err := types.Validate(nc); err != nil {
		c.logger.Info("register customer rejected", "name", nc.Name, "error", err)
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextCustomerID
	c.nextCustomerID++

	c.customers[id] = &customerRecord{
		Customer: types.Customer{ID: id, Name: nc.Name, Email: nc.Email},
		held:     make(map[string]struct{}),
	}
	c.customerOrder = append(c.customerOrder, id)

	c.logger.Debug("customer registered", "customer_id", id, "name", nc.Name)
	return id, nil
}

// lookup returns the book and customer for a borrow-style operation.
// The caller must hold c.mu.
func (c *Catalog) lookup(isbn string, customerID int) (*types.Book, *customerRecord, error) {
	book, ok := c.books[isbn]
	if !ok {
		return nil, nil, fmt.Errorf("book %q: %w", isbn, types.ErrNotFound)
	}
	cust, ok := c.customers[customerID]
	if !ok {
		return nil, nil, fmt.Errorf("customer %d: %w", customerID, types.ErrNotFound)
	}
	return book, cust, nil
}
