package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

func TestUserRepository_UniqueIdentifiers(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	ada, err := repo.Create(ctx, &domain.User{Username: "ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Len(t, ada.ID, 24)

	_, err = repo.Create(ctx, &domain.User{Username: "ada", Email: "other@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	_, err = repo.Create(ctx, &domain.User{Username: "other", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	bob, err := repo.Create(ctx, &domain.User{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
	bob.Username = "ada"
	assert.ErrorIs(t, repo.Replace(ctx, bob), domain.ErrUserExists)

	found, err := repo.FindByIdentifier(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, found.ID)

	summaries, err := repo.FindSummaries(ctx, []string{ada.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, "ada", summaries[ada.ID].Username)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &domain.User{Username: "ada", Email: "ada@example.com", Role: domain.RoleUser})
	require.NoError(t, err)
	u.Role = domain.RoleAdmin

	stored, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role, "callers must not mutate stored records")

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), domain.ErrNotFound)
}

func TestStackRepository_ListOrdering(t *testing.T) {
	repo := NewStackRepository()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	add := func(name string, featured, active bool, order int, age time.Duration) {
		require.NoError(t, repo.Create(ctx, &domain.Stack{
			Name: name, Category: domain.StackBackend, Featured: featured, IsActive: active, Order: order,
			CreatedAt: base.Add(-age),
		}))
	}
	add("old", false, true, 1, 3*time.Hour)
	add("new", false, true, 1, time.Hour)
	add("star", true, true, 9, 5*time.Hour)
	add("first", false, true, 0, 10*time.Hour)
	add("hidden", true, false, 0, 0)

	public, err := repo.List(ctx, ports.ContentFilter{ActiveOnly: true, Sort: ports.SortPublic})
	require.NoError(t, err)
	assert.Equal(t, []string{"star", "first", "new", "old"}, stackNames(public))

	recent, err := repo.List(ctx, ports.ContentFilter{Sort: ports.SortRecent})
	require.NoError(t, err)
	assert.Equal(t, []string{"hidden", "new", "old", "star", "first"}, stackNames(recent))

	limited, err := repo.List(ctx, ports.ContentFilter{ActiveOnly: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"star", "first"}, stackNames(limited))

	none, err := repo.List(ctx, ports.ContentFilter{Category: "Frontend"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStackRepository_FindByID(t *testing.T) {
	repo := NewStackRepository()
	ctx := context.Background()

	s := &domain.Stack{Name: "Go", IsActive: false}
	require.NoError(t, repo.Create(ctx, s))
	require.NotEmpty(t, s.ID)

	_, err := repo.FindByID(ctx, s.ID, true)
	assert.ErrorIs(t, err, domain.ErrStackNotFound)

	got, err := repo.FindByID(ctx, s.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Name)

	found, err := repo.FindByIDs(ctx, []string{s.ID, "nope"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestWorkRepository_DeepCopies(t *testing.T) {
	repo := NewWorkRepository()
	ctx := context.Background()

	w := &domain.Work{Title: "API", IsActive: true, TechnologyIDs: []string{"a"}, Features: []string{"x"}}
	require.NoError(t, repo.Create(ctx, w))
	w.TechnologyIDs[0] = "mutated"
	w.Features = append(w.Features, "y")

	got, err := repo.FindByID(ctx, w.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.TechnologyIDs)
	assert.Equal(t, []string{"x"}, got.Features)

	got.Title = "Renamed"
	require.NoError(t, repo.Replace(ctx, got))
	again, err := repo.FindByID(ctx, w.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Title)

	require.NoError(t, repo.Delete(ctx, w.ID))
	assert.ErrorIs(t, repo.Replace(ctx, got), domain.ErrWorkNotFound)
}

func TestSessionStore_LazyExpiryAndSweep(t *testing.T) {
	store := NewSessionStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "live", domain.Session{UserID: "u1", ExpiresAt: now.Add(time.Hour)}, time.Hour))
	require.NoError(t, store.Save(ctx, "dead", domain.Session{UserID: "u2", ExpiresAt: now.Add(time.Minute)}, time.Minute))
	require.NoError(t, store.Save(ctx, "gone", domain.Session{UserID: "u3", ExpiresAt: now.Add(time.Minute)}, time.Minute))

	now = now.Add(2 * time.Minute)

	_, err := store.Get(ctx, "dead")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 2, store.Len())

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	sess, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, "shared", domain.Session{UserID: "u", ExpiresAt: exp}, time.Hour)
			_, _ = store.Get(ctx, "shared")
			_ = store.Delete(ctx, "shared")
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, store.Len(), 1)
}

func TestSessionStore_RunStopsOnCancel(t *testing.T) {
	store := NewSessionStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func stackNames(stacks []*domain.Stack) []string {
	out := make([]string, len(stacks))
	for i, s := range stacks {
		out[i] = s.Name
	}
	return out
}
