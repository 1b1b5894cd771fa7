package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const sampleSeed = `{"op":"book","isbn":"111","title":"Dune","author":"Herbert","author_birth_year":1920,"year":1965,"copies":1,"genre":"SciFi"}
{"op":"book","isbn":"222","title":"Emma","author":"Austen","year":1815,"copies":2,"genre":"Classic"}

{"op":"customer","name":"Alice","email":"a@x.com"}
{"op":"customer","name":"Bob","email":"b@x.com"}
{"op":"borrow","isbn":"111","customer_id":1,"borrowed_at":"2026-01-01T00:00:00Z"}
{"op":"borrow","isbn":"111","customer_id":2}
{"op":"waitlist","isbn":"222","customer_id":1}
`

func TestLoad(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	c := catalog.New(catalog.WithClock(func() time.Time { return now }))

	rep, err := Load(strings.NewReader(sampleSeed), c)
	require.NoError(t, err)
	assert.Equal(t, Report{Applied: 7}, rep)

	b, err := c.Book("111")
	require.NoError(t, err)
	assert.Equal(t, 0, b.AvailableCopies)

	wl, err := c.Waitlist("111")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, wl)

	wl, err = c.Waitlist("222")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, wl)

	late, err := c.LateReturns(14)
	require.NoError(t, err)
	require.Len(t, late, 1)
	assert.Equal(t, 31, late[0].DaysOut)
}

func TestLoadSkipsMalformedAndReportsFailures(t *testing.T) {
	input := strings.Join([]string{
		`{"op":"book","isbn":"111","title":"Dune","author":"Herbert","copies":1}`,
		`{not json`,
		`{"op":"book","isbn":"111","title":"Dune again","author":"Herbert","copies":1}`,
		`{"op":"borrow","isbn":"111","customer_id":5}`,
		`{"op":"shelve","isbn":"111"}`,
		`{"op":"customer","name":"Alice"}`,
	}, "\n")

	c := catalog.New()
	rep, err := Load(strings.NewReader(input), c)
	require.Error(t, err)
	assert.Equal(t, Report{Applied: 2, Skipped: 1, Failed: 3}, rep)

	assert.ErrorIs(t, err, types.ErrDuplicateKey)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, err, ErrUnknownOp)
	assert.Contains(t, err.Error(), "line 3:")
	assert.Contains(t, err.Error(), "line 4:")
	assert.Contains(t, err.Error(), "line 5:")

	b, err := c.Book("111")
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o644))

	c := catalog.New()
	rep, err := LoadFile(path, c)
	require.NoError(t, err)
	assert.Equal(t, 7, rep.Applied)
	assert.Len(t, c.Books(), 2)
	assert.Len(t, c.Customers(), 2)

	_, err = LoadFile(filepath.Join(dir, "missing.jsonl"), c)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
