// AngelaMos | 2026
// service_test.go

package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursehub/internal/core"
)

type fakeRepository struct {
	items map[string]*CartItem
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[string]*CartItem)}
}

func (f *fakeRepository) Create(_ context.Context, item *CartItem) error {
	for _, existing := range f.items {
		if existing.CourseID == item.CourseID &&
			existing.Email == item.Email {
			return fmt.Errorf("create cart item: %w", core.ErrDuplicateKey)
		}
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepository) GetByID(
	_ context.Context,
	id string,
) (*CartItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, fmt.Errorf("get cart item: %w", core.ErrNotFound)
}

func (f *fakeRepository) DeleteOwned(
	_ context.Context,
	id, email string,
) error {
	item, ok := f.items[id]
	if !ok || item.Email != email {
		return fmt.Errorf("delete cart item: %w", core.ErrNotFound)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepository) ListByEmail(
	_ context.Context,
	email string,
) ([]CartItem, error) {
	var items []CartItem
	for _, item := range f.items {
		if item.Email == email {
			items = append(items, *item)
		}
	}
	return items, nil
}

func TestAddDeduplicatesPerStudent(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	first, err := svc.Add(context.Background(), "course-1", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "course-1", first.CourseID)

	_, err = svc.Add(context.Background(), "course-1", "ada@example.com")
	assert.ErrorIs(t, err, ErrAlreadySelected)
	assert.Len(t, repo.items, 1)

	// A different student holding the same course is fine.
	_, err = svc.Add(context.Background(), "course-1", "bob@example.com")
	require.NoError(t, err)
	assert.Len(t, repo.items, 2)
}

func TestGetEnforcesOwnership(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	item, err := svc.Add(context.Background(), "course-1", "ada@example.com")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), item.ID, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = svc.Get(context.Background(), item.ID, "bob@example.com")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestRemoveOnlyByOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	item, err := svc.Add(context.Background(), "course-1", "ada@example.com")
	require.NoError(t, err)

	err = svc.Remove(context.Background(), item.ID, "bob@example.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Len(t, repo.items, 1)

	err = svc.Remove(context.Background(), item.ID, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, repo.items)
}

func TestListForEmailRejectsOtherCallers(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), "course-1", "ada@example.com")
	require.NoError(t, err)

	items, err := svc.ListForEmail(
		context.Background(),
		"ada@example.com",
		"ada@example.com",
	)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.ListForEmail(
		context.Background(),
		"ada@example.com",
		"bob@example.com",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}
