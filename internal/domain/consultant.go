package domain

import "time"

// Consultant represents a bookable consultant. Profile management is an
// external concern; the core only reads consultants to validate requests.
type Consultant struct {
	ID        int64
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
}
