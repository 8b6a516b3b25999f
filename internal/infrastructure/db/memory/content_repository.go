package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

type StackRepository struct {
	mu     sync.RWMutex
	stacks map[string]*domain.Stack
}

func NewStackRepository() *StackRepository {
	return &StackRepository{stacks: make(map[string]*domain.Stack)}
}

// cloneStack copies s without its resolved projections.
func cloneStack(s *domain.Stack) *domain.Stack {
	c := *s
	c.CreatedBy = nil
	return &c
}

func (r *StackRepository) Create(_ context.Context, s *domain.Stack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = newID()
	r.stacks[s.ID] = cloneStack(s)
	return nil
}

func (r *StackRepository) FindByID(_ context.Context, id string, activeOnly bool) (*domain.Stack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stacks[id]
	if !ok || (activeOnly && !s.IsActive) {
		return nil, domain.ErrStackNotFound
	}
	return cloneStack(s), nil
}

func (r *StackRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.Stack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Stack
	for _, id := range ids {
		if s, ok := r.stacks[id]; ok {
			out = append(out, cloneStack(s))
		}
	}
	return out, nil
}

func (r *StackRepository) List(_ context.Context, f ports.ContentFilter) ([]*domain.Stack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Stack, 0, len(r.stacks))
	for _, s := range r.stacks {
		if matches(f, s.IsActive, s.Featured, string(s.Category)) {
			out = append(out, cloneStack(s))
		}
	}
	sortDocs(out, f.Sort)
	return limit(out, f.Limit), nil
}

func (r *StackRepository) Replace(_ context.Context, s *domain.Stack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stacks[s.ID]; !ok {
		return domain.ErrStackNotFound
	}
	r.stacks[s.ID] = cloneStack(s)
	return nil
}

func (r *StackRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stacks[id]; !ok {
		return domain.ErrStackNotFound
	}
	delete(r.stacks, id)
	return nil
}

type WorkRepository struct {
	mu    sync.RWMutex
	works map[string]*domain.Work
}

func NewWorkRepository() *WorkRepository {
	return &WorkRepository{works: make(map[string]*domain.Work)}
}

// cloneWork deep-copies the stored fields of w; resolved projections are dropped.
func cloneWork(w *domain.Work) *domain.Work {
	c := *w
	c.TechnologyIDs = slices.Clone(w.TechnologyIDs)
	c.Images = slices.Clone(w.Images)
	c.Features = slices.Clone(w.Features)
	c.Technologies = nil
	c.CreatedBy = nil
	return &c
}

func (r *WorkRepository) Create(_ context.Context, w *domain.Work) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w.ID = newID()
	r.works[w.ID] = cloneWork(w)
	return nil
}

func (r *WorkRepository) FindByID(_ context.Context, id string, activeOnly bool) (*domain.Work, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.works[id]
	if !ok || (activeOnly && !w.IsActive) {
		return nil, domain.ErrWorkNotFound
	}
	return cloneWork(w), nil
}

func (r *WorkRepository) List(_ context.Context, f ports.ContentFilter) ([]*domain.Work, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Work, 0, len(r.works))
	for _, w := range r.works {
		if matches(f, w.IsActive, w.Featured, string(w.Category)) {
			out = append(out, cloneWork(w))
		}
	}
	sortDocs(out, f.Sort)
	return limit(out, f.Limit), nil
}

func (r *WorkRepository) Replace(_ context.Context, w *domain.Work) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.works[w.ID]; !ok {
		return domain.ErrWorkNotFound
	}
	r.works[w.ID] = cloneWork(w)
	return nil
}

func (r *WorkRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.works[id]; !ok {
		return domain.ErrWorkNotFound
	}
	delete(r.works, id)
	return nil
}
