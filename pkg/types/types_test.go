package types

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookString(t *testing.T) {
	b := Book{ISBN: "111", Title: "Dune", Author: "Herbert", Year: 1965}
	assert.Equal(t, "Dune by Herbert (1965)", b.String())
}

func TestCustomerClone(t *testing.T) {
	c := Customer{ID: 1, Loans: []Loan{{ISBN: "111", BorrowedAt: time.Now()}}}

	cp := c.Clone()
	cp.Loans[0].ISBN = "999"
	assert.Equal(t, "111", c.Loans[0].ISBN, "clone must not share loans")
}

func TestAuthorClone(t *testing.T) {
	a := Author{Name: "Herbert", ISBNs: []string{"111"}}
	cp := a.Clone()
	cp.ISBNs[0] = "999"
	assert.Equal(t, "111", a.ISBNs[0])
}

func TestValidate(t *testing.T) {
	t.Run("valid book", func(t *testing.T) {
		require.NoError(t, Validate(NewBook{ISBN: "1", Title: "T", AuthorName: "A", Copies: 0}))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := Validate(NewBook{Copies: 1})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "ISBN is required")
		assert.Contains(t, err.Error(), "Title is required")
		assert.Contains(t, err.Error(), "AuthorName is required")
	})

	t.Run("negative copies", func(t *testing.T) {
		err := Validate(NewBook{ISBN: "1", Title: "T", AuthorName: "A", Copies: -2})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "Copies must be at least 0")
	})

	t.Run("bad email", func(t *testing.T) {
		err := Validate(NewCustomer{Name: "Alice", Email: "not-an-email"})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("empty email allowed", func(t *testing.T) {
		require.NoError(t, Validate(NewCustomer{Name: "Alice"}))
	})
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(fmt.Errorf("isbn %q: %w", "1", ErrNotFound)))
	assert.True(t, IsUserError(ErrAlreadyBorrowed))
	assert.False(t, IsUserError(errors.New("disk full")))
	assert.False(t, IsUserError(nil))
}
