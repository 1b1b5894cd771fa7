package types

// Author groups the books registered under one name.
type Author struct {
	Name      string   `json:"name"`
	BirthYear int      `json:"birth_year"`
	ISBNs     []string `json:"isbns"` // registration order, no duplicates
}

// Clone returns a copy that shares no slices with a.
func (a Author) Clone() Author {
	a.ISBNs = append([]string(nil), a.ISBNs...)
	return a
}
