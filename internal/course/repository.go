// AngelaMos | 2026
// repository.go

package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/coursehub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	SetStatus(ctx context.Context, id, status string) (*Course, error)
	SetFeedback(ctx context.Context, id, feedback string) (*Course, error)
	List(ctx context.Context) ([]Course, error)
	ListByStatus(ctx context.Context, status string) ([]Course, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const courseColumns = `
	id, instructor_email, instructor_name, title, description, image,
	price, seats, enrolled, status, feedback, created_at, updated_at`

func (r *repository) Create(ctx context.Context, course *Course) error {
	query := `
		INSERT INTO courses (
			id, instructor_email, instructor_name, title, description,
			image, price, seats, enrolled, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, course, query,
		course.ID,
		course.InstructorEmail,
		course.InstructorName,
		course.Title,
		course.Description,
		course.Image,
		course.Price,
		course.Seats,
		course.Enrolled,
		course.Status,
	)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Course, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM courses WHERE id = $1`,
		courseColumns,
	)

	var course Course
	err := r.db.GetContext(ctx, &course, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get course: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

func (r *repository) SetStatus(
	ctx context.Context,
	id, status string,
) (*Course, error) {
	query := fmt.Sprintf(`
		UPDATE courses
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, courseColumns)

	var course Course
	err := r.db.GetContext(ctx, &course, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set course status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set course status: %w", err)
	}

	return &course, nil
}

func (r *repository) SetFeedback(
	ctx context.Context,
	id, feedback string,
) (*Course, error) {
	query := fmt.Sprintf(`
		UPDATE courses
		SET feedback = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, courseColumns)

	var course Course
	err := r.db.GetContext(ctx, &course, query, id, feedback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set course feedback: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set course feedback: %w", err)
	}

	return &course, nil
}

func (r *repository) List(ctx context.Context) ([]Course, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM courses ORDER BY created_at DESC`,
		courseColumns,
	)

	var courses []Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

func (r *repository) ListByStatus(
	ctx context.Context,
	status string,
) ([]Course, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM courses
		WHERE status = $1
		ORDER BY created_at DESC`, courseColumns)

	var courses []Course
	if err := r.db.SelectContext(ctx, &courses, query, status); err != nil {
		return nil, fmt.Errorf("list courses by status: %w", err)
	}

	return courses, nil
}
