package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"conferencehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntityRepo is an in-memory EntityRepository for tests.
type fakeEntityRepo struct {
	kind   domain.Kind
	byID   map[int64]*domain.Entity
	refs   map[int64][]int64 // entity id -> event ids referencing it
	nextID int64
	err    error // if set, every call returns this error
}

func newFakeEntityRepo(kind domain.Kind) *fakeEntityRepo {
	return &fakeEntityRepo{
		kind:   kind,
		byID:   make(map[int64]*domain.Entity),
		refs:   make(map[int64][]int64),
		nextID: 1,
	}
}

func (f *fakeEntityRepo) Kind() domain.Kind { return f.kind }

func (f *fakeEntityRepo) List(ctx context.Context) ([]*domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Entity
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeEntityRepo) GetByID(ctx context.Context, id int64) (*domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEntityRepo) GetByName(ctx context.Context, name string) (*domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEntityRepo) GetByDescription(ctx context.Context, description string) (*domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Description == description {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEntityRepo) Create(ctx context.Context, e *domain.Entity) error {
	if f.err != nil {
		return f.err
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEntityRepo) Update(ctx context.Context, e *domain.Entity) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEntityRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEntityRepo) CountEventRefs(ctx context.Context, id int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.refs[id]), nil
}

func (f *fakeEntityRepo) ListIDsByEventID(ctx context.Context, eventID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []int64
	for entityID, events := range f.refs {
		for _, ev := range events {
			if ev == eventID {
				ids = append(ids, entityID)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

const testTimeout = 2 * time.Second

func TestEntityService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindSponsor)
		svc := NewEntityService(repo, testTimeout)

		got, err := svc.Create(ctx, "Acme Corp", "Gold sponsor")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "Acme Corp", got.Name)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindSponsor)
		svc := NewEntityService(repo, testTimeout)

		_, err := svc.Create(ctx, "Acme Corp", "Gold sponsor")
		require.NoError(t, err)
		_, err = svc.Create(ctx, "Acme Corp", "Other text")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("duplicate description", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindSponsor)
		svc := NewEntityService(repo, testTimeout)

		_, err := svc.Create(ctx, "Acme Corp", "Gold sponsor")
		require.NoError(t, err)
		_, err = svc.Create(ctx, "Other Corp", "Gold sponsor")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestEntityService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success keeps own name", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindLocation)
		svc := NewEntityService(repo, testTimeout)

		created, err := svc.Create(ctx, "Main Hall", "Ground floor")
		require.NoError(t, err)

		// Unchanged name with a new description must not trip the
		// uniqueness check against the row itself.
		got, err := svc.Update(ctx, created.ID, "Main Hall", "First floor")
		require.NoError(t, err)
		assert.Equal(t, "First floor", got.Description)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindLocation)
		svc := NewEntityService(repo, testTimeout)

		_, err := svc.Update(ctx, 99, "Main Hall", "Ground floor")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("name taken by another row", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindLocation)
		svc := NewEntityService(repo, testTimeout)

		_, err := svc.Create(ctx, "Main Hall", "Ground floor")
		require.NoError(t, err)
		other, err := svc.Create(ctx, "Annex", "Side building")
		require.NoError(t, err)

		_, err = svc.Update(ctx, other.ID, "Main Hall", "Side building")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestEntityService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindCategory)
		svc := NewEntityService(repo, testTimeout)

		created, err := svc.Create(ctx, "Workshops", "Hands-on sessions")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))
		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindCategory)
		svc := NewEntityService(repo, testTimeout)

		assert.ErrorIs(t, svc.Delete(ctx, 5), domain.ErrNotFound)
	})

	t.Run("still assigned to events", func(t *testing.T) {
		repo := newFakeEntityRepo(domain.KindCategory)
		svc := NewEntityService(repo, testTimeout)

		created, err := svc.Create(ctx, "Workshops", "Hands-on sessions")
		require.NoError(t, err)
		repo.refs[created.ID] = []int64{10, 11, 12}

		err = svc.Delete(ctx, created.ID)
		var inUse *domain.InUseError
		require.ErrorAs(t, err, &inUse)
		assert.Equal(t, 3, inUse.Count)
		assert.Contains(t, inUse.Error(), "assigned to 3 event(s)")

		// The row survives a refused delete.
		_, err = svc.Get(ctx, created.ID)
		assert.NoError(t, err)
	})
}

func TestEntityService_List(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEntityRepo(domain.KindResource)
	svc := NewEntityService(repo, testTimeout)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = svc.Create(ctx, "Projector", "4K beamer")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Microphone", "Wireless set")
	require.NoError(t, err)

	got, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Microphone", got[0].Name)
}
