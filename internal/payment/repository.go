// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/coursehub/internal/core"
)

// CourseSeats is the slice of a course row the settlement transaction locks
// and rewrites.
type CourseSeats struct {
	ID       string `db:"id"`
	Seats    int    `db:"seats"`
	Enrolled int    `db:"enrolled"`
}

// Repository methods that participate in settlement take an explicit DBTX so
// the service can run them on a single transaction.
type Repository interface {
	Insert(ctx context.Context, q core.DBTX, p *Payment) error
	GetByIdempotencyKey(
		ctx context.Context,
		q core.DBTX,
		key string,
	) (*Payment, error)
	LockCourseSeats(
		ctx context.Context,
		q core.DBTX,
		courseID string,
	) (*CourseSeats, error)
	ClaimSeat(ctx context.Context, q core.DBTX, courseID string) error
	DeleteCartItem(ctx context.Context, q core.DBTX, cartID, email string) error
	ListByEmail(ctx context.Context, email string) ([]Payment, error)
	ListByEmailNewestFirst(ctx context.Context, email string) ([]Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Insert records a payment. A key collision reports ErrDuplicateKey through
// ON CONFLICT DO NOTHING rather than a raised unique violation, which would
// abort the surrounding transaction and poison every statement after it.
func (r *repository) Insert(
	ctx context.Context,
	q core.DBTX,
	p *Payment,
) error {
	query := `
		INSERT INTO payments (
			id, idempotency_key, email, course_id, cart_id,
			amount, currency, transaction_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING created_at`

	err := q.GetContext(ctx, &p.CreatedAt, query,
		p.ID,
		p.IdempotencyKey,
		p.Email,
		p.CourseID,
		p.CartID,
		p.Amount,
		p.Currency,
		p.TransactionID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("insert payment: %w", core.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *repository) GetByIdempotencyKey(
	ctx context.Context,
	q core.DBTX,
	key string,
) (*Payment, error) {
	query := `
		SELECT id, idempotency_key, email, course_id, cart_id,
		       amount, currency, transaction_id, created_at
		FROM payments
		WHERE idempotency_key = $1`

	var p Payment
	err := q.GetContext(ctx, &p, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &p, nil
}

// LockCourseSeats reads the course row FOR UPDATE so concurrent settlements
// for the same course serialize on the seat counters.
func (r *repository) LockCourseSeats(
	ctx context.Context,
	q core.DBTX,
	courseID string,
) (*CourseSeats, error) {
	query := `
		SELECT id, seats, enrolled
		FROM courses
		WHERE id = $1
		FOR UPDATE`

	var seats CourseSeats
	err := q.GetContext(ctx, &seats, query, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock course: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock course: %w", err)
	}

	return &seats, nil
}

func (r *repository) ClaimSeat(
	ctx context.Context,
	q core.DBTX,
	courseID string,
) error {
	query := `
		UPDATE courses
		SET seats = seats - 1, enrolled = enrolled + 1, updated_at = now()
		WHERE id = $1`

	if _, err := q.ExecContext(ctx, query, courseID); err != nil {
		return fmt.Errorf("claim seat: %w", err)
	}

	return nil
}

func (r *repository) DeleteCartItem(
	ctx context.Context,
	q core.DBTX,
	cartID, email string,
) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND email = $2`

	if _, err := q.ExecContext(ctx, query, cartID, email); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	return nil
}

func (r *repository) ListByEmail(
	ctx context.Context,
	email string,
) ([]Payment, error) {
	query := `
		SELECT id, idempotency_key, email, course_id, cart_id,
		       amount, currency, transaction_id, created_at
		FROM payments
		WHERE email = $1
		ORDER BY created_at ASC`

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

func (r *repository) ListByEmailNewestFirst(
	ctx context.Context,
	email string,
) ([]Payment, error) {
	query := `
		SELECT id, idempotency_key, email, course_id, cart_id,
		       amount, currency, transaction_id, created_at
		FROM payments
		WHERE email = $1
		ORDER BY created_at DESC`

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}
