package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// errInputClosed stops the menu loop when stdin reaches EOF.
var errInputClosed = errors.New("input closed")

const menu = `
1. Add book
2. Register customer
3. Borrow book
4. Return book
5. Search books
6. Display available books
7. Display customer books
8. Recommend books
9. Add to waitlist
10. Check late returns
11. Exit
`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive menu over one catalog",
		Long: `Shell reads menu choices and field values from stdin and applies them to a
single catalog that lives until the session ends. Errors are printed and the
loop continues. Choose 11, type "exit", or close stdin to quit.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &shell{
				cat:      a.cat,
				lateDays: a.cfg.LateDays,
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
			}
			return s.run()
		},
	}
}

// shell is one interactive session.
type shell struct {
	cat      *catalog.Catalog
	lateDays int
	in       *bufio.Scanner
	out      io.Writer
}

func (s *shell) run() error {
	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.prompt("Enter your choice: ")
		if errors.Is(err, errInputClosed) {
			break
		}
		if choice == "11" || choice == "exit" {
			break
		}

		err = s.dispatch(choice)
		if errors.Is(err, errInputClosed) {
			break
		}
		if err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func (s *shell) dispatch(choice string) error {
	switch choice {
	case "1":
		return s.addBook()
	case "2":
		return s.registerCustomer()
	case "3":
		return s.borrow()
	case "4":
		return s.returnBook()
	case "5":
		query, err := s.prompt("Enter search query: ")
		if err != nil {
			return err
		}
		writeBooks(s.out, s.cat.Search(query), "No books found")
		return nil
	case "6":
		writeBooks(s.out, s.cat.AvailableBooks(), "No books available")
		return nil
	case "7":
		id, err := s.promptInt("Enter customer ID: ")
		if err != nil {
			return err
		}
		books, err := s.cat.CustomerBooks(id)
		if err != nil {
			return err
		}
		writeBooks(s.out, books, "No books borrowed")
		return nil
	case "8":
		id, err := s.promptInt("Enter customer ID: ")
		if err != nil {
			return err
		}
		books, err := s.cat.Recommend(id)
		if err != nil {
			return err
		}
		writeBooks(s.out, books, "No recommendations")
		return nil
	case "9":
		isbn, id, err := s.promptLoan()
		if err != nil {
			return err
		}
		if err := s.cat.AddToWaitlist(isbn, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Customer %d added to the waitlist\n", id)
		return nil
	case "10":
		return s.lateReturns()
	default:
		fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		return nil
	}
}

func (s *shell) addBook() error {
	var (
		nb  types.NewBook
		err error
	)
	if nb.ISBN, err = s.prompt("Enter ISBN: "); err != nil {
		return err
	}
	if nb.Title, err = s.prompt("Enter title: "); err != nil {
		return err
	}
	if nb.AuthorName, err = s.prompt("Enter author name: "); err != nil {
		return err
	}
	if nb.AuthorBirthYear, err = s.promptInt("Enter author birth year: "); err != nil {
		return err
	}
	if nb.Year, err = s.promptInt("Enter book year: "); err != nil {
		return err
	}
	if nb.Copies, err = s.promptInt("Enter number of copies: "); err != nil {
		return err
	}
	if nb.Genre, err = s.prompt("Enter genre: "); err != nil {
		return err
	}

	if err := s.cat.AddBook(nb); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Book '%s' added\n", nb.Title)
	return nil
}

func (s *shell) registerCustomer() error {
	name, err := s.prompt("Enter customer name: ")
	if err != nil {
		return err
	}
	email, err := s.prompt("Enter customer email: ")
	if err != nil {
		return err
	}

	id, err := s.cat.RegisterCustomer(types.NewCustomer{Name: name, Email: email})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, registeredMessage(name, id))
	return nil
}

func (s *shell) borrow() error {
	isbn, id, err := s.promptLoan()
	if err != nil {
		return err
	}
	status, err := s.cat.Borrow(isbn, id)
	if err != nil {
		return err
	}
	book, err := s.cat.Book(isbn)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, borrowMessage(book, status))
	return nil
}

func (s *shell) returnBook() error {
	isbn, id, err := s.promptLoan()
	if err != nil {
		return err
	}
	if err := s.cat.Return(isbn, id); err != nil {
		return err
	}
	book, err := s.cat.Book(isbn)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, returnMessage(book))
	return nil
}

func (s *shell) lateReturns() error {
	raw, err := s.prompt(fmt.Sprintf("Enter days threshold [%d]: ", s.lateDays))
	if err != nil {
		return err
	}
	days := s.lateDays
	if raw != "" {
		if days, err = parseInt(raw); err != nil {
			return err
		}
	}

	late, err := s.cat.LateReturns(days)
	if err != nil {
		return err
	}
	if len(late) == 0 {
		fmt.Fprintln(s.out, "No late returns")
		return nil
	}
	for _, l := range late {
		fmt.Fprintln(s.out, lateMessage(l))
	}
	return nil
}

// promptLoan asks for the ISBN and customer ID pair most menu entries need.
func (s *shell) promptLoan() (string, int, error) {
	isbn, err := s.prompt("Enter ISBN: ")
	if err != nil {
		return "", 0, err
	}
	id, err := s.promptInt("Enter customer ID: ")
	if err != nil {
		return "", 0, err
	}
	return isbn, id, nil
}

func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *shell) promptInt(label string) (int, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	return parseInt(raw)
}

func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errUsage, raw)
	}
	return n, nil
}
