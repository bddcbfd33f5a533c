// AngelaMos | 2026
// entity.go

package course

import (
	"time"
)

type Course struct {
	ID              string    `db:"id"`
	InstructorEmail string    `db:"instructor_email"`
	InstructorName  string    `db:"instructor_name"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Image           string    `db:"image"`
	Price           float64   `db:"price"`
	Seats           int       `db:"seats"`
	Enrolled        int       `db:"enrolled"`
	Status          string    `db:"status"`
	Feedback        *string   `db:"feedback"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

func (c *Course) IsApproved() bool {
	return c.Status == StatusApproved
}

func (c *Course) HasSeats() bool {
	return c.Seats > 0
}
