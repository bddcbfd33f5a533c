// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursehub/internal/core"
)

type fakeRepository struct {
	course       *CourseSeats
	byKey        map[string]*Payment
	cartDeletes  int
	seatsClaimed int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byKey: make(map[string]*Payment)}
}

func (f *fakeRepository) Insert(
	_ context.Context,
	_ core.DBTX,
	p *Payment,
) error {
	if _, ok := f.byKey[p.IdempotencyKey]; ok {
		return fmt.Errorf("insert payment: %w", core.ErrDuplicateKey)
	}
	stored := *p
	f.byKey[p.IdempotencyKey] = &stored
	return nil
}

func (f *fakeRepository) GetByIdempotencyKey(
	_ context.Context,
	_ core.DBTX,
	key string,
) (*Payment, error) {
	if p, ok := f.byKey[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
}

func (f *fakeRepository) LockCourseSeats(
	_ context.Context,
	_ core.DBTX,
	courseID string,
) (*CourseSeats, error) {
	if f.course == nil || f.course.ID != courseID {
		return nil, fmt.Errorf("lock course: %w", core.ErrNotFound)
	}
	return f.course, nil
}

func (f *fakeRepository) ClaimSeat(
	_ context.Context,
	_ core.DBTX,
	courseID string,
) error {
	f.course.Seats--
	f.course.Enrolled++
	f.seatsClaimed++
	return nil
}

func (f *fakeRepository) DeleteCartItem(
	_ context.Context,
	_ core.DBTX,
	cartID, email string,
) error {
	f.cartDeletes++
	return nil
}

func (f *fakeRepository) ListByEmail(
	_ context.Context,
	email string,
) ([]Payment, error) {
	return nil, nil
}

func (f *fakeRepository) ListByEmailNewestFirst(
	_ context.Context,
	email string,
) ([]Payment, error) {
	return nil, nil
}

// strictTxRepository enforces the Postgres abort rule: once a statement
// raises inside a transaction, every later statement in that transaction
// fails until rollback. A duplicate-key insert that raises is the classic
// trigger.
type strictTxRepository struct {
	*fakeRepository
	aborted bool
}

var errTxAborted = errors.New(
	"current transaction is aborted, " +
		"commands ignored until end of transaction block",
)

func (s *strictTxRepository) LockCourseSeats(
	ctx context.Context,
	q core.DBTX,
	courseID string,
) (*CourseSeats, error) {
	if s.aborted {
		return nil, errTxAborted
	}
	return s.fakeRepository.LockCourseSeats(ctx, q, courseID)
}

func (s *strictTxRepository) GetByIdempotencyKey(
	ctx context.Context,
	q core.DBTX,
	key string,
) (*Payment, error) {
	if s.aborted {
		return nil, errTxAborted
	}
	return s.fakeRepository.GetByIdempotencyKey(ctx, q, key)
}

func (s *strictTxRepository) Insert(
	ctx context.Context,
	q core.DBTX,
	p *Payment,
) error {
	if s.aborted {
		return errTxAborted
	}
	if err := s.fakeRepository.Insert(ctx, q, p); err != nil {
		s.aborted = true
		return err
	}
	return nil
}

func (s *strictTxRepository) ClaimSeat(
	ctx context.Context,
	q core.DBTX,
	courseID string,
) error {
	if s.aborted {
		return errTxAborted
	}
	return s.fakeRepository.ClaimSeat(ctx, q, courseID)
}

func (s *strictTxRepository) DeleteCartItem(
	ctx context.Context,
	q core.DBTX,
	cartID, email string,
) error {
	if s.aborted {
		return errTxAborted
	}
	return s.fakeRepository.DeleteCartItem(ctx, q, cartID, email)
}

type fakeIntents struct{}

func (fakeIntents) CreateIntent(
	_ context.Context,
	price float64,
) (string, error) {
	return "secret", nil
}

func newTestService(repo *fakeRepository) *Service {
	svc := NewService(nil, repo, fakeIntents{}, "usd")
	svc.runTx = func(
		ctx context.Context,
		fn func(tx *sqlx.Tx) error,
	) error {
		return fn(nil)
	}
	return svc
}

func settleRequest() SettleRequest {
	return SettleRequest{
		IdempotencyKey: "key-1",
		CourseID:       "course-1",
		CartID:         "cart-1",
		TransactionID:  "pi_123",
		Amount:         49.99,
	}
}

func TestSettleCommitsAtomically(t *testing.T) {
	repo := newFakeRepository()
	repo.course = &CourseSeats{ID: "course-1", Seats: 5, Enrolled: 2}
	svc := newTestService(repo)

	outcome, settled, err := svc.Settle(
		context.Background(),
		settleRequest(),
		"ada@example.com",
	)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCommitted, outcome)
	require.NotNil(t, settled)
	assert.Equal(t, "ada@example.com", settled.Email)
	assert.Equal(t, "usd", settled.Currency)

	assert.Equal(t, 4, repo.course.Seats)
	assert.Equal(t, 3, repo.course.Enrolled)
	assert.Equal(t, 1, repo.cartDeletes)
}

func TestSettleIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	repo.course = &CourseSeats{ID: "course-1", Seats: 5, Enrolled: 2}
	svc := newTestService(repo)

	outcome, first, err := svc.Settle(
		context.Background(),
		settleRequest(),
		"ada@example.com",
	)
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, outcome)

	outcome, replay, err := svc.Settle(
		context.Background(),
		settleRequest(),
		"ada@example.com",
	)
	require.NoError(t, err)

	assert.Equal(t, OutcomeAlreadySettled, outcome)
	require.NotNil(t, replay)
	assert.Equal(t, first.ID, replay.ID)

	// The seat was claimed exactly once.
	assert.Equal(t, 1, repo.seatsClaimed)
	assert.Equal(t, 4, repo.course.Seats)
	assert.Equal(t, 3, repo.course.Enrolled)
}

// A replayed settlement must resolve without executing any statement after
// one that raises: the key lookup runs before the insert, so the original
// payment row is returned even when the backing store refuses all work in
// a transaction that has seen a failed statement.
func TestSettleReplayReadsBeforeWriting(t *testing.T) {
	inner := newFakeRepository()
	inner.course = &CourseSeats{ID: "course-1", Seats: 5, Enrolled: 2}
	repo := &strictTxRepository{fakeRepository: inner}

	svc := NewService(nil, repo, fakeIntents{}, "usd")
	svc.runTx = func(
		ctx context.Context,
		fn func(tx *sqlx.Tx) error,
	) error {
		repo.aborted = false
		return fn(nil)
	}

	outcome, first, err := svc.Settle(
		context.Background(),
		settleRequest(),
		"ada@example.com",
	)
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, outcome)

	outcome, replay, err := svc.Settle(
		context.Background(),
		settleRequest(),
		"ada@example.com",
	)
	require.NoError(t, err)

	assert.Equal(t, OutcomeAlreadySettled, outcome)
	require.NotNil(t, replay)
	assert.Equal(t, first.ID, replay.ID)
	assert.Equal(t, 1, inner.seatsClaimed)
	assert.Equal(t, 4, inner.course.Seats)
}

func TestSettleRefusesWhenSoldOut(t *testing.T) {
	repo := newFakeRepository()
	repo.course = &CourseSeats{ID: "course-1", Seats: 0, Enrolled: 30}
	svc := newTestService(repo)

	outcome, settled, err := svc.Settle(
		context.Background(),
		settleRequest(),
		"ada@example.com",
	)
	require.NoError(t, err)

	assert.Equal(t, OutcomeInsufficientSeats, outcome)
	assert.Nil(t, settled)
	assert.Equal(t, 0, repo.seatsClaimed)
	assert.Equal(t, 30, repo.course.Enrolled)
}

func TestSettleUnknownCourse(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	outcome, settled, err := svc.Settle(
		context.Background(),
		settleRequest(),
		"ada@example.com",
	)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCourseNotFound, outcome)
	assert.Nil(t, settled)
	assert.Empty(t, repo.byKey)
}

func TestListForEmailRejectsOtherCallers(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.ListForEmail(
		context.Background(),
		"ada@example.com",
		"bob@example.com",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.ListForEmailNewestFirst(
		context.Background(),
		"ada@example.com",
		"bob@example.com",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}
