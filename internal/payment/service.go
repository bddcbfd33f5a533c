// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/coursehub/internal/core"
)

// errSettleHalted aborts the settlement transaction without surfacing as a
// failure; the outcome variable carries the real result.
var errSettleHalted = errors.New("settlement halted")

type Service struct {
	repo     Repository
	intents  IntentCreator
	currency string
	runTx    func(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	intents IntentCreator,
	currency string,
) *Service {
	return &Service{
		repo:     repo,
		intents:  intents,
		currency: currency,
		runTx: func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return core.InTx(ctx, db, fn)
		},
	}
}

func (s *Service) CreateIntent(
	ctx context.Context,
	price float64,
) (string, error) {
	return s.intents.CreateIntent(ctx, price)
}

// Settle runs the whole enrollment as one transaction: record the payment,
// claim a seat, and release the cart hold. Either everything commits or
// nothing does.
//
// The course row is locked FOR UPDATE before any write, so two settlements
// racing for the last seat serialize and the loser sees zero seats. A retry
// with the same idempotency key trips the unique index on payments and is
// answered with the already-recorded payment instead of a second seat claim.
func (s *Service) Settle(
	ctx context.Context,
	req SettleRequest,
	email string,
) (SettleOutcome, *Payment, error) {
	outcome := OutcomeCommitted

	settled := &Payment{
		ID:             uuid.New().String(),
		IdempotencyKey: req.IdempotencyKey,
		Email:          email,
		CourseID:       req.CourseID,
		CartID:         req.CartID,
		Amount:         req.Amount,
		Currency:       s.currency,
		TransactionID:  req.TransactionID,
	}

	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		seats, err := s.repo.LockCourseSeats(ctx, tx, req.CourseID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				outcome = OutcomeCourseNotFound
				return errSettleHalted
			}
			return err
		}

		// The replay check must run before any write: a statement that
		// raises inside the transaction aborts it, and Postgres refuses
		// every later statement until rollback.
		existing, err := s.repo.GetByIdempotencyKey(
			ctx, tx, req.IdempotencyKey,
		)
		if err == nil {
			settled = existing
			outcome = OutcomeAlreadySettled
			return errSettleHalted
		}
		if !errors.Is(err, core.ErrNotFound) {
			return err
		}

		if err := s.repo.Insert(ctx, tx, settled); err != nil {
			// Lost a race with a concurrent settlement holding the same
			// key; the insert is conflict-safe so the winner's row is
			// still readable.
			if errors.Is(err, core.ErrDuplicateKey) {
				existing, getErr := s.repo.GetByIdempotencyKey(
					ctx, tx, req.IdempotencyKey,
				)
				if getErr != nil {
					return fmt.Errorf("load settled payment: %w", getErr)
				}
				settled = existing
				outcome = OutcomeAlreadySettled
				return errSettleHalted
			}
			return err
		}

		if seats.Seats <= 0 {
			outcome = OutcomeInsufficientSeats
			return errSettleHalted
		}

		if err := s.repo.ClaimSeat(ctx, tx, req.CourseID); err != nil {
			return err
		}

		// The cart hold may already be gone; a missing row is not a
		// settlement failure.
		return s.repo.DeleteCartItem(ctx, tx, req.CartID, email)
	})
	if err != nil && !errors.Is(err, errSettleHalted) {
		return outcome, nil, err
	}

	switch outcome {
	case OutcomeCommitted, OutcomeAlreadySettled:
		return outcome, settled, nil
	default:
		return outcome, nil, nil
	}
}

// ListForEmail returns a student's payments in enrollment order. The caller
// may only read their own history.
func (s *Service) ListForEmail(
	ctx context.Context,
	requestedEmail, callerEmail string,
) ([]Payment, error) {
	if requestedEmail != callerEmail {
		return nil, fmt.Errorf("list payments: %w", core.ErrForbidden)
	}

	return s.repo.ListByEmail(ctx, requestedEmail)
}

// ListForEmailNewestFirst is the history view, most recent payment first.
func (s *Service) ListForEmailNewestFirst(
	ctx context.Context,
	requestedEmail, callerEmail string,
) ([]Payment, error) {
	if requestedEmail != callerEmail {
		return nil, fmt.Errorf("list payments: %w", core.ErrForbidden)
	}

	return s.repo.ListByEmailNewestFirst(ctx, requestedEmail)
}
