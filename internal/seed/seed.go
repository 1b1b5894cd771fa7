// Package seed replays a JSONL file of catalog operations into a catalog.
//
// Each non-empty line is one JSON object whose "op" field selects the
// operation: book, customer, borrow, or waitlist. Malformed lines are skipped;
// lines that parse but fail against the catalog are reported and replay
// continues.
package seed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Operation names accepted in the "op" field.
const (
	OpBook     = "book"
	OpCustomer = "customer"
	OpBorrow   = "borrow"
	OpWaitlist = "waitlist"
)

// ErrUnknownOp is reported for a line whose op is not recognized.
var ErrUnknownOp = errors.New("unknown seed op")

// Target is the subset of catalog operations a seed file can drive.
type Target interface {
	AddBook(nb types.NewBook) error
	RegisterCustomer(nc types.NewCustomer) (int, error)
	Borrow(isbn string, customerID int) (catalog.BorrowStatus, error)
	BorrowAt(isbn string, customerID int, at time.Time) (catalog.BorrowStatus, error)
	AddToWaitlist(isbn string, customerID int) error
}

// Record is one seed line.
type Record struct {
	Op string `json:"op"`

	ISBN            string `json:"isbn,omitempty"`
	Title           string `json:"title,omitempty"`
	Author          string `json:"author,omitempty"`
	AuthorBirthYear int    `json:"author_birth_year,omitempty"`
	Year            int    `json:"year,omitempty"`
	Copies          int    `json:"copies,omitempty"`
	Genre           string `json:"genre,omitempty"`

	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`

	CustomerID int        `json:"customer_id,omitempty"`
	BorrowedAt *time.Time `json:"borrowed_at,omitempty"`
}

// Report counts what a replay did.
type Report struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"` // malformed JSON lines
	Failed  int `json:"failed"`
}

// LoadFile opens path and replays it into target.
func LoadFile(path string, target Target) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Load(f, target)
}

// Load replays every line of r into target. The returned error joins one
// error per failed line and any read error; the Report is valid either way.
func Load(r io.Reader, target Target) (Report, error) {
	var (
		rep  Report
		errs []error
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			rep.Skipped++
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			rep.Skipped++
			continue
		}

		if err := Apply(target, rec); err != nil {
			rep.Failed++
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		rep.Applied++
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("scanning seed: %w", err))
	}
	return rep, errors.Join(errs...)
}

// Apply performs the single operation described by rec.
func Apply(target Target, rec Record) error {
	switch rec.Op {
	case OpBook:
		return target.AddBook(types.NewBook{
			ISBN:            rec.ISBN,
			Title:           rec.Title,
			AuthorName:      rec.Author,
			AuthorBirthYear: rec.AuthorBirthYear,
			Year:            rec.Year,
			Copies:          rec.Copies,
			Genre:           rec.Genre,
		})
	case OpCustomer:
		_, err := target.RegisterCustomer(types.NewCustomer{Name: rec.Name, Email: rec.Email})
		return err
	case OpBorrow:
		var err error
		if rec.BorrowedAt != nil {
			_, err = target.BorrowAt(rec.ISBN, rec.CustomerID, *rec.BorrowedAt)
		} else {
			_, err = target.Borrow(rec.ISBN, rec.CustomerID)
		}
		return err
	case OpWaitlist:
		return target.AddToWaitlist(rec.ISBN, rec.CustomerID)
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, rec.Op)
	}
}
