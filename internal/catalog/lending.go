package catalog

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// BorrowStatus reports what a successful Borrow did.
type BorrowStatus int

const (
	// Borrowed means a copy was lent to the customer.
	Borrowed BorrowStatus = iota + 1
	// Waitlisted means no copy was free and the customer joined the waitlist.
	Waitlisted
)

func (s BorrowStatus) String() string {
	switch s {
	case Borrowed:
		return "borrowed"
	case Waitlisted:
		return "waitlisted"
	default:
		return "unknown"
	}
}

// Borrow lends a copy of isbn to the customer, stamping the loan with the
// catalog clock. See BorrowAt.
func (c *Catalog) Borrow(isbn string, customerID int) (BorrowStatus, error) {
	return c.BorrowAt(isbn, customerID, c.now())
}

// BorrowAt lends a copy of isbn to the customer with the loan dated at.
// If no copy is available the customer is appended to the book's waitlist
// instead and Waitlisted is returned; repeated attempts append repeatedly.
// Returns ErrNotFound for an unknown ISBN or customer and ErrAlreadyBorrowed,
// without changing state, if the customer already holds the book.
func (c *Catalog) BorrowAt(isbn string, customerID int, at time.Time) (BorrowStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	book, cust, err := c.lookup(isbn, customerID)
	if err != nil {
		c.logger.Info("borrow rejected", "isbn", isbn, "customer_id", customerID, "error", err)
		return 0, err
	}

	if _, held := cust.held[isbn]; held {
		c.logger.Info("borrow rejected", "isbn", isbn, "customer_id", customerID, "error", types.ErrAlreadyBorrowed)
		return 0, fmt.Errorf("customer %d, book %q: %w", customerID, isbn, types.ErrAlreadyBorrowed)
	}

	if book.AvailableCopies <= 0 {
		c.waitlist[isbn] = append(c.waitlist[isbn], customerID)
		c.logger.Debug("customer waitlisted", "isbn", isbn, "customer_id", customerID, "position", len(c.waitlist[isbn]))
		return Waitlisted, nil
	}

	book.AvailableCopies--
	cust.Loans = append(cust.Loans, types.Loan{
		LoanID:     c.newID(),
		ISBN:       isbn,
		BorrowedAt: at,
	})
	cust.held[isbn] = struct{}{}

	c.logger.Debug("book borrowed", "isbn", isbn, "customer_id", customerID, "available", book.AvailableCopies)
	return Borrowed, nil
}

// Return takes back the customer's copy of isbn.
// Returns ErrNotFound for an unknown ISBN or customer and ErrNotBorrowed,
// without changing state, if the customer does not hold the book.
func (c *Catalog) Return(isbn string, customerID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	book, cust, err := c.lookup(isbn, customerID)
	if err != nil {
		c.logger.Info("return rejected", "isbn", isbn, "customer_id", customerID, "error", err)
		return err
	}

	if _, held := cust.held[isbn]; !held {
		c.logger.Info("return rejected", "isbn", isbn, "customer_id", customerID, "error", types.ErrNotBorrowed)
		return fmt.Errorf("customer %d, book %q: %w", customerID, isbn, types.ErrNotBorrowed)
	}

	for i, loan := range cust.Loans {
		if loan.ISBN == isbn {
			cust.Loans = append(cust.Loans[:i], cust.Loans[i+1:]...)
			break
		}
	}
	delete(cust.held, isbn)

	if book.AvailableCopies < book.Copies {
		book.AvailableCopies++
	}

	c.logger.Debug("book returned", "isbn", isbn, "customer_id", customerID, "available", book.AvailableCopies)
	return nil
}

// AddToWaitlist appends the customer to the waitlist for isbn. Entries are
// never deduplicated or removed.
// Returns ErrNotFound for an unknown ISBN or customer.
func (c *Catalog) AddToWaitlist(isbn string, customerID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, _, err := c.lookup(isbn, customerID); err != nil {
		c.logger.Info("waitlist rejected", "isbn", isbn, "customer_id", customerID, "error", err)
		return err
	}

	c.waitlist[isbn] = append(c.waitlist[isbn], customerID)
	c.logger.Debug("customer waitlisted", "isbn", isbn, "customer_id", customerID, "position", len(c.waitlist[isbn]))
	return nil
}

// Waitlist returns the customer IDs waiting for isbn in arrival order.
// Returns ErrNotFound for an unknown ISBN.
func (c *Catalog) Waitlist(isbn string) ([]int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.books[isbn]; !ok {
		return nil, fmt.Errorf("book %q: %w", isbn, types.ErrNotFound)
	}
	return append([]int{}, c.waitlist[isbn]...), nil
}

// LateReturns lists every loan held for more than daysThreshold whole days,
// ordered by customer ID and then by borrow order.
// Returns ErrInvalidArgument for a negative threshold.
func (c *Catalog) LateReturns(daysThreshold int) ([]types.LateReturn, error) {
	if daysThreshold < 0 {
		return nil, fmt.Errorf("days threshold %d: %w", daysThreshold, types.ErrInvalidArgument)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	var late []types.LateReturn
	for _, id := range c.customerOrder {
		cust := c.customers[id]
		for _, loan := range cust.Loans {
			days := int(now.Sub(loan.BorrowedAt) / (24 * time.Hour))
			if days <= daysThreshold {
				continue
			}
			late = append(late, types.LateReturn{
				CustomerID:   cust.ID,
				CustomerName: cust.Name,
				Book:         *c.books[loan.ISBN],
				BorrowedAt:   loan.BorrowedAt,
				DaysOut:      days,
			})
		}
	}
	return late, nil
}
