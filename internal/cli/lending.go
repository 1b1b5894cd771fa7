package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// borrowResult is the JSON shape of a borrow.
type borrowResult struct {
	Status string     `json:"status"`
	Book   types.Book `json:"book"`
}

func newBorrowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "borrow <isbn> <customer-id>",
		Short: "Lend a copy, or join the waitlist when none is free",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCustomerID(args[1])
			if err != nil {
				return err
			}
			status, err := a.cat.Borrow(args[0], id)
			if err != nil {
				return err
			}
			book, err := a.cat.Book(args[0])
			if err != nil {
				return err
			}
			res := borrowResult{Status: status.String(), Book: book}
			return a.emit(cmd, res, func(w io.Writer) {
				fmt.Fprintln(w, borrowMessage(book, status))
			})
		},
	}
}

func newReturnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "return <isbn> <customer-id>",
		Short: "Take back a customer's copy",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCustomerID(args[1])
			if err != nil {
				return err
			}
			if err := a.cat.Return(args[0], id); err != nil {
				return err
			}
			book, err := a.cat.Book(args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd, book, func(w io.Writer) {
				fmt.Fprintln(w, returnMessage(book))
			})
		},
	}
}

func newWaitlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Manage per-book waitlists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <isbn> <customer-id>",
		Short: "Append a customer to a book's waitlist",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCustomerID(args[1])
			if err != nil {
				return err
			}
			if err := a.cat.AddToWaitlist(args[0], id); err != nil {
				return err
			}
			return a.showWaitlist(cmd, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <isbn>",
		Short: "Show the customers waiting for a book",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showWaitlist(cmd, args[0])
		},
	})
	return cmd
}

func (a *app) showWaitlist(cmd *cobra.Command, isbn string) error {
	ids, err := a.cat.Waitlist(isbn)
	if err != nil {
		return err
	}
	return a.emit(cmd, ids, func(w io.Writer) {
		if len(ids) == 0 {
			fmt.Fprintf(w, "No one is waiting for %s\n", isbn)
			return
		}
		for i, id := range ids {
			fmt.Fprintf(w, "%d. customer %d\n", i+1, id)
		}
	})
}

func newLateCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "late",
		Short: "List loans held longer than the threshold",
		Long: `List loans held for more than --days whole days. The default comes from
late_days in config.yaml (14 when unset).`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.LateDays
			}
			late, err := a.cat.LateReturns(days)
			if err != nil {
				return err
			}
			if late == nil {
				late = []types.LateReturn{}
			}
			return a.emit(cmd, late, func(w io.Writer) {
				if len(late) == 0 {
					fmt.Fprintln(w, "No late returns")
					return
				}
				for _, l := range late {
					fmt.Fprintln(w, lateMessage(l))
				}
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", types.DefaultLateDays, "days threshold")
	return cmd
}
