package sqlite

// Schema DDL for the snapshot tables.
const (
	createSnapshot = `CREATE TABLE snapshot (
    taken_at TEXT NOT NULL
);`

	createAuthors = `CREATE TABLE authors (
    name TEXT PRIMARY KEY,
    birth_year INTEGER NOT NULL
);`

	createBooks = `CREATE TABLE books (
    isbn TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    year INTEGER NOT NULL,
    copies INTEGER NOT NULL,
    available_copies INTEGER NOT NULL,
    genre TEXT NOT NULL,
    FOREIGN KEY (author) REFERENCES authors(name)
);`

	createCustomers = `CREATE TABLE customers (
    customer_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL
);`

	createLoans = `CREATE TABLE loans (
    loan_id TEXT PRIMARY KEY,
    customer_id INTEGER NOT NULL,
    isbn TEXT NOT NULL,
    borrowed_at TEXT NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
    FOREIGN KEY (isbn) REFERENCES books(isbn)
);`

	createWaitlist = `CREATE TABLE waitlist (
    isbn TEXT NOT NULL,
    position INTEGER NOT NULL,
    customer_id INTEGER NOT NULL,
    PRIMARY KEY (isbn, position),
    FOREIGN KEY (isbn) REFERENCES books(isbn),
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
);`
)

// Index DDL for common report queries.
const (
	idxBooksGenre    = `CREATE INDEX idx_books_genre ON books(genre);`
	idxBooksAuthor   = `CREATE INDEX idx_books_author ON books(author);`
	idxLoansCustomer = `CREATE INDEX idx_loans_customer ON loans(customer_id);`
	idxLoansISBN     = `CREATE INDEX idx_loans_isbn ON loans(isbn);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSnapshot,
	createAuthors,
	createBooks,
	createCustomers,
	createLoans,
	createWaitlist,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxBooksGenre,
	idxBooksAuthor,
	idxLoansCustomer,
	idxLoansISBN,
}
