package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/metrics"
)

type WorkService struct {
	repo     ports.WorkRepository
	stacks   ports.StackRepository
	creators creatorResolver
	logger   zerolog.Logger
	now      func() time.Time
}

func NewWorkService(repo ports.WorkRepository, stacks ports.StackRepository, users ports.UserRepository, logger zerolog.Logger) *WorkService {
	return &WorkService{
		repo:     repo,
		stacks:   stacks,
		creators: creatorResolver{users: users},
		logger:   logger,
		now:      time.Now,
	}
}

// ListPublic returns active works in display order, technologies resolved and
// creator details stripped.
func (s *WorkService) ListPublic(ctx context.Context, in ports.ListInput) ([]*domain.Work, error) {
	filter, err := publicFilter(in)
	if err != nil {
		return nil, err
	}
	works, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.withTechnologies(ctx, works...); err != nil {
		return nil, err
	}
	for _, w := range works {
		w.CreatedBy = nil
	}
	return works, nil
}

// GetPublic returns one active work; inactive works are reported as not found.
func (s *WorkService) GetPublic(ctx context.Context, id string) (*domain.Work, error) {
	w, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.withTechnologies(ctx, w); err != nil {
		return nil, err
	}
	w.CreatedBy = nil
	return w, nil
}

func (s *WorkService) ListAll(ctx context.Context) ([]*domain.Work, error) {
	works, err := s.repo.List(ctx, ports.ContentFilter{Sort: ports.SortRecent})
	if err != nil {
		return nil, err
	}
	if err := s.resolve(ctx, works...); err != nil {
		return nil, err
	}
	return works, nil
}

func (s *WorkService) Get(ctx context.Context, id string) (*domain.Work, error) {
	w, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := s.resolve(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkService) Create(ctx context.Context, in ports.WorkInput, createdBy string) (*domain.Work, error) {
	w := domain.NewWork()
	w.Title = in.Title
	w.Description = in.Description
	w.ShortDescription = in.ShortDescription
	w.TechnologyIDs = in.Technologies
	w.Images = in.Images
	w.Links = in.Links
	w.Features = in.Features
	w.Duration = domain.Duration{StartDate: in.StartDate, EndDate: in.EndDate}
	w.Featured = in.Featured
	w.Order = in.Order
	if in.Category != nil {
		w.Category = *in.Category
	}
	if in.Status != nil {
		w.Status = *in.Status
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}

	if err := s.validate(ctx, w, true); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	w.CreatedByID = createdBy
	w.CreatedAt = now
	w.UpdatedAt = now

	if err := s.repo.Create(ctx, w); err != nil {
		s.logger.Error().Err(err).Msg("failed to create work")
		return nil, err
	}
	if err := s.resolve(ctx, w); err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("work", "create").Inc()
	s.logger.Info().Str("work_id", w.ID).Str("created_by", createdBy).Int("technologies", len(w.TechnologyIDs)).Msg("work created")
	return w, nil
}

func (s *WorkService) Update(ctx context.Context, id string, p ports.WorkPatch) (*domain.Work, error) {
	w, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	applyString(&w.Title, p.Title)
	applyString(&w.Description, p.Description)
	applyString(&w.ShortDescription, p.ShortDescription)
	if p.Category != nil {
		w.Category = *p.Category
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Technologies != nil {
		w.TechnologyIDs = *p.Technologies
	}
	if p.Images != nil {
		w.Images = *p.Images
	}
	if p.Links != nil {
		w.Links = *p.Links
	}
	if p.Features != nil {
		w.Features = *p.Features
	}
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	if p.Featured != nil {
		w.Featured = *p.Featured
	}
	if p.IsActive != nil {
		w.IsActive = *p.IsActive
	}
	if p.Order != nil {
		w.Order = *p.Order
	}

	// Stored ids of since-deleted stacks are tolerated; only a new list is checked.
	if err := s.validate(ctx, w, p.Technologies != nil); err != nil {
		return nil, err
	}
	w.UpdatedAt = s.now().UTC()

	if err := s.repo.Replace(ctx, w); err != nil {
		return nil, err
	}
	if err := s.resolve(ctx, w); err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("work", "update").Inc()
	s.logger.Info().Str("work_id", w.ID).Msg("work updated")
	return w, nil
}

func (s *WorkService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("work", "delete").Inc()
	s.logger.Info().Str("work_id", id).Msg("work deleted")
	return nil
}

// validate normalizes w and checks its fields. With checkTechnologies set every
// technology id must reference an existing stack.
func (s *WorkService) validate(ctx context.Context, w *domain.Work, checkTechnologies bool) error {
	w.Normalize()
	if err := w.Validate(); err != nil {
		return err
	}
	if !checkTechnologies || len(w.TechnologyIDs) == 0 {
		return nil
	}

	found, err := s.stacks.FindByIDs(ctx, w.TechnologyIDs)
	if err != nil {
		return fmt.Errorf("check technologies: %w", err)
	}
	known := make(map[string]struct{}, len(found))
	for _, st := range found {
		known[st.ID] = struct{}{}
	}
	var missing []string
	for _, id := range w.TechnologyIDs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return domain.Invalid("technologies", "unknown stack ids: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *WorkService) resolve(ctx context.Context, works ...*domain.Work) error {
	if err := s.withTechnologies(ctx, works...); err != nil {
		return err
	}
	ids := make([]string, len(works))
	for i, w := range works {
		ids[i] = w.CreatedByID
	}
	return s.creators.resolve(ctx, ids, func(i int, u *domain.UserSummary) {
		works[i].CreatedBy = u
	})
}

// withTechnologies replaces the stored technology ids with their stack projection,
// keeping the stored order. Ids of deleted stacks are dropped from the view.
func (s *WorkService) withTechnologies(ctx context.Context, works ...*domain.Work) error {
	var ids []string
	for _, w := range works {
		ids = append(ids, w.TechnologyIDs...)
	}
	if len(ids) == 0 {
		for _, w := range works {
			w.Technologies = []domain.TechnologyRef{}
		}
		return nil
	}

	stacks, err := s.stacks.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return fmt.Errorf("resolve technologies: %w", err)
	}
	byID := make(map[string]*domain.Stack, len(stacks))
	for _, st := range stacks {
		byID[st.ID] = st
	}

	for _, w := range works {
		refs := make([]domain.TechnologyRef, 0, len(w.TechnologyIDs))
		for _, id := range w.TechnologyIDs {
			if st, ok := byID[id]; ok {
				refs = append(refs, st.TechnologyRef())
			}
		}
		w.Technologies = refs
	}
	return nil
}
