package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/metrics"
)

type StackService struct {
	repo     ports.StackRepository
	creators creatorResolver
	logger   zerolog.Logger
	now      func() time.Time
}

func NewStackService(repo ports.StackRepository, users ports.UserRepository, logger zerolog.Logger) *StackService {
	return &StackService{
		repo:     repo,
		creators: creatorResolver{users: users},
		logger:   logger,
		now:      time.Now,
	}
}

// ListPublic returns active stacks in display order without creator details.
func (s *StackService) ListPublic(ctx context.Context, in ports.ListInput) ([]*domain.Stack, error) {
	filter, err := publicFilter(in)
	if err != nil {
		return nil, err
	}
	stacks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, st := range stacks {
		st.CreatedBy = nil
	}
	return stacks, nil
}

// ListAll returns every stack, newest first, with creators resolved.
func (s *StackService) ListAll(ctx context.Context) ([]*domain.Stack, error) {
	stacks, err := s.repo.List(ctx, ports.ContentFilter{Sort: ports.SortRecent})
	if err != nil {
		return nil, err
	}
	if err := s.withCreators(ctx, stacks...); err != nil {
		return nil, err
	}
	return stacks, nil
}

func (s *StackService) Get(ctx context.Context, id string) (*domain.Stack, error) {
	st, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := s.withCreators(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StackService) Create(ctx context.Context, in ports.StackInput, createdBy string) (*domain.Stack, error) {
	st := domain.NewStack()
	st.Name = in.Name
	st.Description = in.Description
	st.Icon = in.Icon
	st.Link = in.Link
	st.YearsOfExperience = in.YearsOfExperience
	st.Featured = in.Featured
	st.Order = in.Order
	if in.Category != nil {
		st.Category = *in.Category
	}
	if in.ProficiencyLevel != nil {
		st.ProficiencyLevel = *in.ProficiencyLevel
	}
	if in.Color != nil {
		st.Color = *in.Color
	}
	if in.IsActive != nil {
		st.IsActive = *in.IsActive
	}

	st.Normalize()
	if err := st.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	st.CreatedByID = createdBy
	st.CreatedAt = now
	st.UpdatedAt = now

	if err := s.repo.Create(ctx, st); err != nil {
		s.logger.Error().Err(err).Msg("failed to create stack")
		return nil, err
	}
	if err := s.withCreators(ctx, st); err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("stack", "create").Inc()
	s.logger.Info().Str("stack_id", st.ID).Str("created_by", createdBy).Msg("stack created")
	return st, nil
}

func (s *StackService) Update(ctx context.Context, id string, p ports.StackPatch) (*domain.Stack, error) {
	st, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	applyString(&st.Name, p.Name)
	applyString(&st.Description, p.Description)
	applyString(&st.Icon, p.Icon)
	applyString(&st.Color, p.Color)
	applyString(&st.Link, p.Link)
	if p.Category != nil {
		st.Category = *p.Category
	}
	if p.ProficiencyLevel != nil {
		st.ProficiencyLevel = *p.ProficiencyLevel
	}
	if p.YearsOfExperience != nil {
		st.YearsOfExperience = *p.YearsOfExperience
	}
	if p.Featured != nil {
		st.Featured = *p.Featured
	}
	if p.IsActive != nil {
		st.IsActive = *p.IsActive
	}
	if p.Order != nil {
		st.Order = *p.Order
	}

	st.Normalize()
	if err := st.Validate(); err != nil {
		return nil, err
	}
	st.UpdatedAt = s.now().UTC()

	if err := s.repo.Replace(ctx, st); err != nil {
		return nil, err
	}
	if err := s.withCreators(ctx, st); err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("stack", "update").Inc()
	s.logger.Info().Str("stack_id", st.ID).Msg("stack updated")
	return st, nil
}

// Delete removes the stack. Works still referencing it simply stop showing it.
func (s *StackService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("stack", "delete").Inc()
	s.logger.Info().Str("stack_id", id).Msg("stack deleted")
	return nil
}

func (s *StackService) withCreators(ctx context.Context, stacks ...*domain.Stack) error {
	ids := make([]string, len(stacks))
	for i, st := range stacks {
		ids[i] = st.CreatedByID
	}
	return s.creators.resolve(ctx, ids, func(i int, u *domain.UserSummary) {
		stacks[i].CreatedBy = u
	})
}
