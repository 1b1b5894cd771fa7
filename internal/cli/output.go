package cli

import (
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// emit writes v as indented JSON in --json mode and calls text otherwise.
func (a *app) emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
	text(w)
	return nil
}

// emitBooks prints one "<title> by <author> (<year>)" line per book, or
// empty when there are none.
func (a *app) emitBooks(cmd *cobra.Command, books []types.Book, empty string) error {
	if books == nil {
		books = []types.Book{}
	}
	return a.emit(cmd, books, func(w io.Writer) {
		writeBooks(w, books, empty)
	})
}

func writeBooks(w io.Writer, books []types.Book, empty string) {
	if len(books) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, b := range books {
		fmt.Fprintln(w, b)
	}
}

func writeBookDetail(w io.Writer, b types.Book) {
	fmt.Fprintln(w, b)
	fmt.Fprintf(w, "  ISBN:      %s\n", b.ISBN)
	fmt.Fprintf(w, "  Genre:     %s\n", b.Genre)
	fmt.Fprintf(w, "  Available: %d of %d\n", b.AvailableCopies, b.Copies)
}

func borrowMessage(b types.Book, status catalog.BorrowStatus) string {
	if status == catalog.Waitlisted {
		return fmt.Sprintf("'%s' is unavailable, you have been put on a waitlist", b.Title)
	}
	return fmt.Sprintf("Book '%s' has been borrowed successfully", b.Title)
}

func returnMessage(b types.Book) string {
	return fmt.Sprintf("Book '%s' has been returned successfully", b.Title)
}

func registeredMessage(name string, id int) string {
	return fmt.Sprintf("Customer %s registered with id number %d", name, id)
}

func lateMessage(l types.LateReturn) string {
	return fmt.Sprintf("Customer %s has a late return: %s (%d days)", l.CustomerName, l.Book.Title, l.DaysOut)
}

// parseCustomerID converts a command-line customer ID.
func parseCustomerID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: customer id %q is not a number", errUsage, s)
	}
	return id, nil
}

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}
