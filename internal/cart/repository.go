// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/coursehub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, item *CartItem) error
	GetByID(ctx context.Context, id string) (*CartItem, error)
	DeleteOwned(ctx context.Context, id, email string) error
	ListByEmail(ctx context.Context, email string) ([]CartItem, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *CartItem) error {
	query := `
		INSERT INTO cart_items (id, course_id, email)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &item.CreatedAt, query,
		item.ID,
		item.CourseID,
		item.Email,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create cart item: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create cart item: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*CartItem, error) {
	query := `
		SELECT id, course_id, email, created_at
		FROM cart_items
		WHERE id = $1`

	var item CartItem
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get cart item: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}

	return &item, nil
}

// DeleteOwned removes a cart row only when it belongs to the given email, so
// one student cannot release another student's hold.
func (r *repository) DeleteOwned(ctx context.Context, id, email string) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND email = $2`

	result, err := r.db.ExecContext(ctx, query, id, email)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete cart item: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByEmail(
	ctx context.Context,
	email string,
) ([]CartItem, error) {
	query := `
		SELECT id, course_id, email, created_at
		FROM cart_items
		WHERE email = $1
		ORDER BY created_at DESC`

	var items []CartItem
	if err := r.db.SelectContext(ctx, &items, query, email); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	return items, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
