// AngelaMos | 2026
// service_test.go

package course

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursehub/internal/core"
)

type fakeRepository struct {
	courses map[string]*Course
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{courses: make(map[string]*Course)}
}

func (f *fakeRepository) Create(_ context.Context, c *Course) error {
	f.courses[c.ID] = c
	return nil
}

func (f *fakeRepository) GetByID(
	_ context.Context,
	id string,
) (*Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("get course: %w", core.ErrNotFound)
}

func (f *fakeRepository) SetStatus(
	_ context.Context,
	id, status string,
) (*Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, fmt.Errorf("set status: %w", core.ErrNotFound)
	}
	c.Status = status
	return c, nil
}

func (f *fakeRepository) SetFeedback(
	_ context.Context,
	id, feedback string,
) (*Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, fmt.Errorf("set feedback: %w", core.ErrNotFound)
	}
	c.Feedback = &feedback
	return c, nil
}

func (f *fakeRepository) List(_ context.Context) ([]Course, error) {
	courses := make([]Course, 0, len(f.courses))
	for _, c := range f.courses {
		courses = append(courses, *c)
	}
	return courses, nil
}

func (f *fakeRepository) ListByStatus(
	_ context.Context,
	status string,
) ([]Course, error) {
	var courses []Course
	for _, c := range f.courses {
		if c.Status == status {
			courses = append(courses, *c)
		}
	}
	return courses, nil
}

func TestCreateStartsPending(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateCourseRequest{
		InstructorName: "Grace",
		Title:          "Distributed Systems",
		Price:          49.99,
		Seats:          30,
	}, "grace@example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, "grace@example.com", created.InstructorEmail)
	assert.Equal(t, 0, created.Enrolled)
	assert.NotEmpty(t, created.ID)
}

func TestSetStatusValidatesValue(t *testing.T) {
	repo := newFakeRepository()
	repo.courses["c1"] = &Course{ID: "c1", Status: StatusPending}
	svc := NewService(repo)

	_, err := svc.SetStatus(context.Background(), "c1", "published")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Equal(t, StatusPending, repo.courses["c1"].Status)

	approved, err := svc.SetStatus(context.Background(), "c1", StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	denied, err := svc.SetStatus(context.Background(), "c1", StatusDenied)
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, denied.Status)
}

func TestSetStatusUnknownCourse(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.SetStatus(context.Background(), "missing", StatusApproved)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListApprovedFiltersCatalog(t *testing.T) {
	repo := newFakeRepository()
	repo.courses["c1"] = &Course{ID: "c1", Status: StatusApproved}
	repo.courses["c2"] = &Course{ID: "c2", Status: StatusPending}
	repo.courses["c3"] = &Course{ID: "c3", Status: StatusDenied}
	svc := NewService(repo)

	approved, err := svc.ListApproved(context.Background())
	require.NoError(t, err)

	require.Len(t, approved, 1)
	assert.Equal(t, "c1", approved[0].ID)
}

func TestSetFeedbackStoresNote(t *testing.T) {
	repo := newFakeRepository()
	repo.courses["c1"] = &Course{ID: "c1", Status: StatusDenied}
	svc := NewService(repo)

	updated, err := svc.SetFeedback(
		context.Background(),
		"c1",
		"needs a clearer syllabus",
	)
	require.NoError(t, err)

	require.NotNil(t, updated.Feedback)
	assert.Equal(t, "needs a clearer syllabus", *updated.Feedback)
}
