package domain

import (
	"context"
	"time"
)

// Event represents a conference event
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name, description string, date, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		Date:        date,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventAssociations holds the ids of all entities attached to one event,
// one slice per kind. Saving replaces the full selection.
// swagger:model EventAssociations
type EventAssociations struct {
	SponsorIDs   []int64 `json:"sponsor_ids"`
	CateringIDs  []int64 `json:"catering_ids"`
	CategoryIDs  []int64 `json:"category_ids"`
	LocationIDs  []int64 `json:"location_ids"`
	ResourceIDs  []int64 `json:"resource_ids"`
	PrelegentIDs []int64 `json:"prelegent_ids"`
}

// ForKind returns the id slice for the given kind.
func (a *EventAssociations) ForKind(k Kind) []int64 {
	switch k.Singular {
	case KindSponsor.Singular:
		return a.SponsorIDs
	case KindCaterer.Singular:
		return a.CateringIDs
	case KindCategory.Singular:
		return a.CategoryIDs
	case KindLocation.Singular:
		return a.LocationIDs
	case KindResource.Singular:
		return a.ResourceIDs
	case KindPrelegent.Singular:
		return a.PrelegentIDs
	}
	return nil
}

// SetForKind replaces the id slice for the given kind.
func (a *EventAssociations) SetForKind(k Kind, ids []int64) {
	switch k.Singular {
	case KindSponsor.Singular:
		a.SponsorIDs = ids
	case KindCaterer.Singular:
		a.CateringIDs = ids
	case KindCategory.Singular:
		a.CategoryIDs = ids
	case KindLocation.Singular:
		a.LocationIDs = ids
	case KindResource.Singular:
		a.ResourceIDs = ids
	case KindPrelegent.Singular:
		a.PrelegentIDs = ids
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetByName(ctx context.Context, name string) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	// Delete removes the event, its association rows for every kind, and its
	// tickets in one transaction.
	Delete(ctx context.Context, id int64) error
	// SetAssociations replaces all association rows for the event with the
	// given selection in one transaction.
	SetAssociations(ctx context.Context, eventID int64, assoc *EventAssociations) error
	GetAssociations(ctx context.Context, eventID int64) (*EventAssociations, error)
	// ListByEntityRef returns events attached to the given entity, ordered by date.
	ListByEntityRef(ctx context.Context, kind Kind, entityID int64) ([]*Event, error)
}

// EventService defines the business logic for events and their associations.
type EventService interface {
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Get(ctx context.Context, id int64) (*Event, *EventAssociations, error)
	Create(ctx context.Context, name, description string, date time.Time) (*Event, error)
	Update(ctx context.Context, id int64, name, description string, date time.Time) (*Event, error)
	Delete(ctx context.Context, id int64) error
	SetAssociations(ctx context.Context, eventID int64, assoc *EventAssociations) error
	ListByPrelegent(ctx context.Context, prelegentID int64) ([]*Event, error)
}
