package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type entityService struct {
	repo           domain.EntityRepository
	contextTimeout time.Duration
}

// NewEntityService creates the guarded CRUD service for one entity kind.
// One instance per kind; all behavior comes from the repository's metadata.
func NewEntityService(repo domain.EntityRepository, timeout time.Duration) domain.EntityService {
	return &entityService{repo: repo, contextTimeout: timeout}
}

func (s *entityService) Kind() domain.Kind {
	return s.repo.Kind()
}

func (s *entityService) List(ctx context.Context) ([]*domain.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Kind().Plural, err)
	}
	if entities == nil {
		entities = []*domain.Entity{}
	}
	return entities, nil
}

func (s *entityService) Get(ctx context.Context, id int64) (*domain.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.Kind().Singular, err)
	}
	return entity, nil
}

func (s *entityService) Create(ctx context.Context, name, description string) (*domain.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkUnique(ctx, name, description, 0); err != nil {
		return nil, err
	}

	now := time.Now()
	entity := domain.NewEntity(name, description, now, now)
	if err := s.repo.Create(ctx, entity); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("create %s: %w", s.Kind().Singular, err)
	}
	return entity, nil
}

func (s *entityService) Update(ctx context.Context, id int64, name, description string) (*domain.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.Kind().Singular, err)
	}

	if err := s.checkUnique(ctx, name, description, id); err != nil {
		return nil, err
	}

	entity.Name = name
	entity.Description = description
	entity.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, entity); err != nil {
		// The row may vanish between the existence check and the write.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("update %s: %w", s.Kind().Singular, err)
	}
	return entity, nil
}

// checkUnique rejects names and descriptions already used by a different
// row. excludeID skips the row being updated so an unchanged value passes.
// The table's unique constraint remains the backstop for races.
func (s *entityService) checkUnique(ctx context.Context, name, description string, excludeID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check %s name: %w", s.Kind().Singular, err)
	}
	if existing != nil && existing.ID != excludeID {
		return domain.ErrDuplicate
	}
	existing, err = s.repo.GetByDescription(ctx, description)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check %s description: %w", s.Kind().Singular, err)
	}
	if existing != nil && existing.ID != excludeID {
		return domain.ErrDuplicate
	}
	return nil
}

func (s *entityService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get %s: %w", s.Kind().Singular, err)
	}

	count, err := s.repo.CountEventRefs(ctx, id)
	if err != nil {
		return fmt.Errorf("count %s refs: %w", s.Kind().Singular, err)
	}
	if count > 0 {
		return &domain.InUseError{Count: count}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		var inUse *domain.InUseError
		if errors.Is(err, domain.ErrNotFound) || errors.As(err, &inUse) {
			return err
		}
		return fmt.Errorf("delete %s: %w", s.Kind().Singular, err)
	}
	return nil
}
