package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	entityRepos    map[string]domain.EntityRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService. entityRepos must contain one
// repository per managed kind, keyed by the kind's singular name; they are
// used to validate association selections before the transactional write.
func NewEventService(eventRepo domain.EventRepository, entityRepos map[string]domain.EntityRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		entityRepos:    entityRepos,
		contextTimeout: timeout,
	}
}

func (s *eventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) Get(ctx context.Context, id int64) (*domain.Event, *domain.EventAssociations, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	assoc, err := s.eventRepo.GetAssociations(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get event associations: %w", err)
	}
	return event, assoc, nil
}

func (s *eventService) Create(ctx context.Context, name, description string, date time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	event := domain.NewEvent(name, description, date, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id int64, name, description string, date time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	event.Name = name
	event.Description = description
	event.Date = date
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// SetAssociations validates that the event and every selected entity exist,
// then rewrites the event's full selection in one transaction. The repository
// maps foreign-key violations from a losing race to ErrInvalidInput.
func (s *eventService) SetAssociations(ctx context.Context, eventID int64, assoc *domain.EventAssociations) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if assoc == nil {
		return domain.ErrInvalidInput
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	for _, kind := range domain.Kinds() {
		repo, ok := s.entityRepos[kind.Singular]
		if !ok {
			return fmt.Errorf("no repository for kind %s", kind.Singular)
		}
		for _, id := range assoc.ForKind(kind) {
			if _, err := repo.GetByID(ctx, id); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%w: %s %d does not exist", domain.ErrInvalidInput, kind.Singular, id)
				}
				return fmt.Errorf("get %s: %w", kind.Singular, err)
			}
		}
	}

	if err := s.eventRepo.SetAssociations(ctx, eventID, assoc); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("set event associations: %w", err)
	}
	return nil
}

func (s *eventService) ListByPrelegent(ctx context.Context, prelegentID int64) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	repo, ok := s.entityRepos[domain.KindPrelegent.Singular]
	if !ok {
		return nil, fmt.Errorf("no repository for kind %s", domain.KindPrelegent.Singular)
	}
	if _, err := repo.GetByID(ctx, prelegentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get prelegent: %w", err)
	}

	events, err := s.eventRepo.ListByEntityRef(ctx, domain.KindPrelegent, prelegentID)
	if err != nil {
		return nil, fmt.Errorf("list events by prelegent: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
