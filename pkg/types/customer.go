package types

import "time"

// Loan records one book held by a customer.
type Loan struct {
	LoanID     string    `json:"loan_id"` // UUID v7
	ISBN       string    `json:"isbn"`
	BorrowedAt time.Time `json:"borrowed_at"`
}

// Customer is a registered library patron.
type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Loans []Loan `json:"loans"` // borrow order
}

// Clone returns a copy that shares no slices with c.
func (c Customer) Clone() Customer {
	c.Loans = append([]Loan(nil), c.Loans...)
	return c
}

// NewCustomer carries the fields needed to register a customer.
type NewCustomer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// LateReturn is a loan held longer than the configured threshold.
type LateReturn struct {
	CustomerID   int       `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Book         Book      `json:"book"`
	BorrowedAt   time.Time `json:"borrowed_at"`
	DaysOut      int       `json:"days_out"`
}
