package types

import "time"

// Snapshot is a consistent copy of the whole catalog at one instant.
type Snapshot struct {
	TakenAt   time.Time        `json:"taken_at"`
	Authors   []Author         `json:"authors"`
	Books     []Book           `json:"books"`
	Customers []Customer       `json:"customers"`
	Waitlist  map[string][]int `json:"waitlist"`
}
