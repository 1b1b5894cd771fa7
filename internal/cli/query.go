package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find books by title, author, or exact ISBN",
		Long: `Search returns books whose title or author name contains the query, or whose
ISBN equals it. Matching is case-sensitive.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emitBooks(cmd, a.cat.Search(args[0]), "No books found")
		},
	}
}

func newAvailableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List books with at least one free copy",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emitBooks(cmd, a.cat.AvailableBooks(), "No books available")
		},
	}
}

func newRecommendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <customer-id>",
		Short: "Suggest books in the genres a customer is reading",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCustomerID(args[0])
			if err != nil {
				return err
			}
			books, err := a.cat.Recommend(id)
			if err != nil {
				return err
			}
			return a.emitBooks(cmd, books, "No recommendations")
		},
	}
}

func newAuthorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List authors and how many books each has",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			authors := a.cat.Authors()
			return a.emit(cmd, authors, func(w io.Writer) {
				if len(authors) == 0 {
					fmt.Fprintln(w, "No authors")
					return
				}
				for _, au := range authors {
					fmt.Fprintf(w, "%s (b. %d): %d book(s)\n", au.Name, au.BirthYear, len(au.ISBNs))
				}
			})
		},
	}
}

func newGenresCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "genres [genre]",
		Short: "List genres, or the books in one genre",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.emitBooks(cmd, a.cat.BooksByGenre(args[0]), "No books in genre")
			}
			genres := a.cat.Genres()
			return a.emit(cmd, genres, func(w io.Writer) {
				for _, g := range genres {
					fmt.Fprintln(w, g)
				}
			})
		},
	}
}
