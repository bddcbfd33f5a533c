// AngelaMos | 2026
// entity.go

package payment

import (
	"time"
)

// Payment records one settled enrollment. IdempotencyKey is unique so a
// retried settlement maps back to the row the first attempt wrote.
type Payment struct {
	ID             string    `db:"id"`
	IdempotencyKey string    `db:"idempotency_key"`
	Email          string    `db:"email"`
	CourseID       string    `db:"course_id"`
	CartID         string    `db:"cart_id"`
	Amount         float64   `db:"amount"`
	Currency       string    `db:"currency"`
	TransactionID  string    `db:"transaction_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// SettleOutcome tags how a settlement attempt resolved. Only Committed
// changes stored state.
type SettleOutcome int

const (
	OutcomeCommitted SettleOutcome = iota
	OutcomeAlreadySettled
	OutcomeInsufficientSeats
	OutcomeCourseNotFound
)

func (o SettleOutcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeAlreadySettled:
		return "already_settled"
	case OutcomeInsufficientSeats:
		return "insufficient_seats"
	case OutcomeCourseNotFound:
		return "course_not_found"
	default:
		return "unknown"
	}
}
