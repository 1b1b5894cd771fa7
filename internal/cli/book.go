package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func newBookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Register and inspect books",
	}
	cmd.AddCommand(newBookAddCmd(a))
	cmd.AddCommand(newBookGetCmd(a))
	return cmd
}

func newBookAddCmd(a *app) *cobra.Command {
	var nb types.NewBook

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new book",
		Long: `Register a new book. The author is created on first use; later books by the
same author keep the first registered birth year.`,
		Example: `  shelf book add --isbn 111 --title Dune --author Herbert --author-birth-year 1920 \
    --year 1965 --copies 2 --genre SciFi`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cat.AddBook(nb); err != nil {
				return err
			}
			book, err := a.cat.Book(nb.ISBN)
			if err != nil {
				return err
			}
			return a.emit(cmd, book, func(w io.Writer) {
				fmt.Fprintf(w, "Added %s\n", book)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&nb.ISBN, "isbn", "", "ISBN (required, unique)")
	f.StringVar(&nb.Title, "title", "", "title (required)")
	f.StringVar(&nb.AuthorName, "author", "", "author name (required)")
	f.IntVar(&nb.AuthorBirthYear, "author-birth-year", 0, "author birth year")
	f.IntVar(&nb.Year, "year", 0, "publication year")
	f.IntVar(&nb.Copies, "copies", 1, "number of copies")
	f.StringVar(&nb.Genre, "genre", "", "genre")
	return cmd
}

func newBookGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <isbn>",
		Short: "Show one book",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.cat.Book(args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd, book, func(w io.Writer) {
				writeBookDetail(w, book)
			})
		},
	}
}
