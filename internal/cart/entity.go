// AngelaMos | 2026
// entity.go

package cart

import (
	"time"
)

// CartItem is a student's hold on a course while payment is pending. It is
// deleted either explicitly or as part of payment settlement.
type CartItem struct {
	ID        string    `db:"id"`
	CourseID  string    `db:"course_id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
