package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// seedShelf registers a small mixed-genre catalog and two customers.
func seedShelf(t *testing.T, c *Catalog) (alice, bob int) {
	t.Helper()
	for _, nb := range []types.NewBook{
		dune(),
		{ISBN: "222", Title: "Emma", AuthorName: "Austen", Year: 1815, Copies: 1, Genre: "Classic"},
		{ISBN: "333", Title: "Neuromancer", AuthorName: "Gibson", Year: 1984, Copies: 1, Genre: "SciFi"},
		{ISBN: "444", Title: "Children of Dune", AuthorName: "Herbert", Year: 1976, Copies: 0, Genre: "SciFi"},
		{ISBN: "555", Title: "Persuasion", AuthorName: "Austen", Year: 1817, Copies: 3, Genre: "Classic"},
	} {
		mustAddBook(t, c, nb)
	}
	return mustRegister(t, c, "alice"), mustRegister(t, c, "bob")
}

func isbns(books []types.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ISBN)
	}
	return out
}

func TestSearch(t *testing.T) {
	c, _ := newTestCatalog(t)
	seedShelf(t, c)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "title substring", query: "Dune", want: []string{"111", "444"}},
		{name: "author substring", query: "Aust", want: []string{"222", "555"}},
		{name: "exact isbn returns one book", query: "333", want: []string{"333"}},
		{name: "case sensitive", query: "dune", want: []string{}},
		{name: "partial isbn does not match", query: "33", want: []string{}},
		{name: "empty query matches everything", query: "", want: []string{"111", "222", "333", "444", "555"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isbns(c.Search(tt.query)))
		})
	}
}

func TestAvailableBooks(t *testing.T) {
	c, _ := newTestCatalog(t)
	alice, _ := seedShelf(t, c)

	assert.Equal(t, []string{"111", "222", "333", "555"}, isbns(c.AvailableBooks()))

	_, err := c.Borrow("333", alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222", "555"}, isbns(c.AvailableBooks()))
}

func TestCustomerBooks(t *testing.T) {
	c, _ := newTestCatalog(t)
	alice, _ := seedShelf(t, c)

	_, err := c.Borrow("222", alice)
	require.NoError(t, err)
	_, err = c.Borrow("111", alice)
	require.NoError(t, err)

	books, err := c.CustomerBooks(alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"222", "111"}, isbns(books))
	assert.Equal(t, "Emma by Austen (1815)", books[0].String())

	_, err = c.CustomerBooks(404)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestRecommend(t *testing.T) {
	c, _ := newTestCatalog(t)
	alice, bob := seedShelf(t, c)

	t.Run("no loans yields nothing", func(t *testing.T) {
		recs, err := c.Recommend(bob)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("shares genre and skips held books", func(t *testing.T) {
		_, err := c.Borrow("111", alice)
		require.NoError(t, err)

		recs, err := c.Recommend(alice)
		require.NoError(t, err)
		assert.Equal(t, []string{"333", "444"}, isbns(recs))
	})

	t.Run("union of borrowed genres", func(t *testing.T) {
		_, err := c.Borrow("222", alice)
		require.NoError(t, err)

		recs, err := c.Recommend(alice)
		require.NoError(t, err)
		assert.Equal(t, []string{"333", "444", "555"}, isbns(recs))
		for _, r := range recs {
			assert.NotContains(t, []string{"111", "222"}, r.ISBN)
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := c.Recommend(99)
		require.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestSnapshot(t *testing.T) {
	c, clock := newTestCatalog(t)
	alice, bob := seedShelf(t, c)
	_, err := c.Borrow("333", alice)
	require.NoError(t, err)
	_, err = c.Borrow("333", bob)
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, clock.Now(), snap.TakenAt)
	assert.Len(t, snap.Books, 5)
	assert.Len(t, snap.Authors, 3)
	require.Len(t, snap.Customers, 2)
	assert.Len(t, snap.Customers[0].Loans, 1)
	assert.Equal(t, map[string][]int{"333": {bob}}, snap.Waitlist)

	// The snapshot is detached from catalog state.
	snap.Waitlist["333"][0] = 0
	wl, _ := c.Waitlist("333")
	assert.Equal(t, []int{bob}, wl)
}
