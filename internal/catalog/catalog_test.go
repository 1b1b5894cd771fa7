package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// fakeClock is a settable time source for loan stamps.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

// newTestCatalog returns a catalog with a fixed clock and predictable loan IDs.
func newTestCatalog(t *testing.T) (*Catalog, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	n := 0
	c := New(
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("loan-%d", n)
		}),
	)
	return c, clock
}

func dune() types.NewBook {
	return types.NewBook{
		ISBN:            "111",
		Title:           "Dune",
		AuthorName:      "Herbert",
		AuthorBirthYear: 1920,
		Year:            1965,
		Copies:          2,
		Genre:           "SciFi",
	}
}

func mustAddBook(t *testing.T, c *Catalog, nb types.NewBook) {
	t.Helper()
	require.NoError(t, c.AddBook(nb))
}

func mustRegister(t *testing.T, c *Catalog, name string) int {
	t.Helper()
	id, err := c.RegisterCustomer(types.NewCustomer{Name: name, Email: name + "@x.com"})
	require.NoError(t, err)
	return id
}

func TestAddBook(t *testing.T) {
	t.Run("registers book author and genre", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		mustAddBook(t, c, dune())

		b, err := c.Book("111")
		require.NoError(t, err)
		assert.Equal(t, 2, b.Copies)
		assert.Equal(t, 2, b.AvailableCopies)
		assert.Equal(t, "Herbert", b.Author)

		a, err := c.Author("Herbert")
		require.NoError(t, err)
		assert.Equal(t, 1920, a.BirthYear)
		assert.Equal(t, []string{"111"}, a.ISBNs)

		assert.Equal(t, []string{"SciFi"}, c.Genres())
		assert.Len(t, c.BooksByGenre("SciFi"), 1)
	})

	t.Run("duplicate isbn is rejected without mutation", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		mustAddBook(t, c, dune())

		other := dune()
		other.Title = "Other"
		other.Genre = "Fantasy"
		err := c.AddBook(other)
		require.ErrorIs(t, err, types.ErrDuplicateKey)

		b, err := c.Book("111")
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
		assert.Empty(t, c.BooksByGenre("Fantasy"))
		assert.Equal(t, []string{"SciFi"}, c.Genres())
	})

	t.Run("first author registration wins on birth year", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		mustAddBook(t, c, dune())

		messiah := dune()
		messiah.ISBN = "112"
		messiah.Title = "Dune Messiah"
		messiah.AuthorBirthYear = 1999
		mustAddBook(t, c, messiah)

		a, err := c.Author("Herbert")
		require.NoError(t, err)
		assert.Equal(t, 1920, a.BirthYear)
		assert.Equal(t, []string{"111", "112"}, a.ISBNs)
		assert.Len(t, c.Authors(), 1)
	})

	t.Run("negative copies is an invalid argument", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		nb := dune()
		nb.Copies = -1
		require.ErrorIs(t, c.AddBook(nb), types.ErrInvalidArgument)
		assert.Empty(t, c.Books())
	})

	t.Run("genre index holds exactly the books of that genre", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		mustAddBook(t, c, dune())
		mustAddBook(t, c, types.NewBook{ISBN: "222", Title: "Emma", AuthorName: "Austen", Copies: 1, Genre: "Classic"})
		mustAddBook(t, c, types.NewBook{ISBN: "333", Title: "Neuromancer", AuthorName: "Gibson", Copies: 1, Genre: "SciFi"})

		for _, genre := range c.Genres() {
			for _, b := range c.BooksByGenre(genre) {
				assert.Equal(t, genre, b.Genre)
			}
		}
		assert.Len(t, c.BooksByGenre("SciFi"), 2)
		assert.Len(t, c.BooksByGenre("Classic"), 1)
	})
}

func TestRegisterCustomer(t *testing.T) {
	c, _ := newTestCatalog(t)

	assert.Equal(t, 1, mustRegister(t, c, "alice"))
	assert.Equal(t, 2, mustRegister(t, c, "bob"))

	_, err := c.RegisterCustomer(types.NewCustomer{Email: "nobody@x.com"})
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	// A rejected registration does not consume an ID.
	assert.Equal(t, 3, mustRegister(t, c, "carol"))

	cust, err := c.Customer(2)
	require.NoError(t, err)
	assert.Equal(t, "bob", cust.Name)
	assert.Equal(t, "bob@x.com", cust.Email)

	_, err = c.Customer(99)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	c, _ := newTestCatalog(t)
	mustAddBook(t, c, dune())
	id := mustRegister(t, c, "alice")
	_, err := c.Borrow("111", id)
	require.NoError(t, err)

	b, err := c.Book("111")
	require.NoError(t, err)
	b.AvailableCopies = 100

	cust, err := c.Customer(id)
	require.NoError(t, err)
	cust.Loans = nil

	again, err := c.Book("111")
	require.NoError(t, err)
	assert.Equal(t, 1, again.AvailableCopies)

	held, err := c.CustomerBooks(id)
	require.NoError(t, err)
	assert.Len(t, held, 1)
}
