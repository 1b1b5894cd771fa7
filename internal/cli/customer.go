package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func newCustomerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Register customers and list their loans",
	}
	cmd.AddCommand(newCustomerRegisterCmd(a))
	cmd.AddCommand(newCustomerBooksCmd(a))
	cmd.AddCommand(newCustomerListCmd(a))
	return cmd
}

func newCustomerRegisterCmd(a *app) *cobra.Command {
	var nc types.NewCustomer

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a customer and print the assigned ID",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.cat.RegisterCustomer(nc)
			if err != nil {
				return err
			}
			cust, err := a.cat.Customer(id)
			if err != nil {
				return err
			}
			return a.emit(cmd, cust, func(w io.Writer) {
				fmt.Fprintln(w, registeredMessage(cust.Name, cust.ID))
			})
		},
	}

	cmd.Flags().StringVar(&nc.Name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&nc.Email, "email", "", "customer email")
	return cmd
}

func newCustomerBooksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "books <customer-id>",
		Short: "List the books a customer holds",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCustomerID(args[0])
			if err != nil {
				return err
			}
			books, err := a.cat.CustomerBooks(id)
			if err != nil {
				return err
			}
			return a.emitBooks(cmd, books, "No books borrowed")
		},
	}
}

func newCustomerListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered customers",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			customers := a.cat.Customers()
			return a.emit(cmd, customers, func(w io.Writer) {
				if len(customers) == 0 {
					fmt.Fprintln(w, "No customers registered")
					return
				}
				for _, c := range customers {
					fmt.Fprintf(w, "%d\t%s <%s>\t%d on loan\n", c.ID, c.Name, c.Email, len(c.Loans))
				}
			})
		},
	}
}
