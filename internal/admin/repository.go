// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/coursehub/internal/core"
)

// MarketplaceCounts is the admin dashboard rollup of platform activity.
type MarketplaceCounts struct {
	Users           int `json:"users"           db:"users"`
	Instructors     int `json:"instructors"     db:"instructors"`
	CoursesTotal    int `json:"courses_total"   db:"courses_total"`
	CoursesPending  int `json:"courses_pending" db:"courses_pending"`
	CoursesApproved int `json:"courses_approved" db:"courses_approved"`
	Payments        int `json:"payments"        db:"payments"`
}

type Repository interface {
	MarketplaceCounts(ctx context.Context) (*MarketplaceCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) MarketplaceCounts(
	ctx context.Context,
) (*MarketplaceCounts, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users) AS users,
			(SELECT count(*) FROM users
				WHERE role = 'instructor') AS instructors,
			(SELECT count(*) FROM courses) AS courses_total,
			(SELECT count(*) FROM courses
				WHERE status = 'pending') AS courses_pending,
			(SELECT count(*) FROM courses
				WHERE status = 'approved') AS courses_approved,
			(SELECT count(*) FROM payments) AS payments`

	var counts MarketplaceCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("marketplace counts: %w", err)
	}

	return &counts, nil
}
