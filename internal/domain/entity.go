package domain

import (
	"context"
	"time"
)

// Entity is a simple named resource managed by administrators: a sponsor,
// caterer, category, location, equipment resource, or prelegent. All six
// families share this shape and are distinguished only by their Kind.
// swagger:model Entity
type Entity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEntity returns a new Entity with the given fields. ID is set by the
// repository on create.
func NewEntity(name, description string, createdAt, updatedAt time.Time) *Entity {
	return &Entity{
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Kind is the metadata that parameterizes the shared CRUD machinery for one
// entity family: its table, its event join table, and the join column that
// references the entity. Table names come only from the fixed Kind values
// below, never from request input.
type Kind struct {
	Singular   string
	Plural     string
	Table      string
	JoinTable  string
	JoinColumn string
}

var (
	KindSponsor   = Kind{Singular: "sponsor", Plural: "sponsors", Table: "sponsors", JoinTable: "event_sponsors", JoinColumn: "sponsor_id"}
	KindCaterer   = Kind{Singular: "catering", Plural: "caterings", Table: "caterings", JoinTable: "event_caterings", JoinColumn: "catering_id"}
	KindCategory  = Kind{Singular: "category", Plural: "categories", Table: "categories", JoinTable: "event_categories", JoinColumn: "category_id"}
	KindLocation  = Kind{Singular: "location", Plural: "locations", Table: "locations", JoinTable: "event_locations", JoinColumn: "location_id"}
	KindResource  = Kind{Singular: "resource", Plural: "resources", Table: "resources", JoinTable: "event_resources", JoinColumn: "resource_id"}
	KindPrelegent = Kind{Singular: "prelegent", Plural: "prelegents", Table: "prelegents", JoinTable: "event_prelegents", JoinColumn: "prelegent_id"}
)

// Kinds returns all managed entity kinds in route-registration order.
func Kinds() []Kind {
	return []Kind{KindSponsor, KindCaterer, KindCategory, KindLocation, KindResource, KindPrelegent}
}

// EntityRepository defines storage for one entity kind and its event links.
type EntityRepository interface {
	// Kind returns the metadata this repository was built with.
	Kind() Kind
	// List returns all entities of the kind ordered by name.
	List(ctx context.Context) ([]*Entity, error)
	GetByID(ctx context.Context, id int64) (*Entity, error)
	// GetByName and GetByDescription are used for uniqueness pre-checks.
	GetByName(ctx context.Context, name string) (*Entity, error)
	GetByDescription(ctx context.Context, description string) (*Entity, error)
	Create(ctx context.Context, e *Entity) error
	Update(ctx context.Context, e *Entity) error
	Delete(ctx context.Context, id int64) error
	// CountEventRefs returns how many event associations reference the entity.
	CountEventRefs(ctx context.Context, id int64) (int, error)
	// ListIDsByEventID returns the ids of entities attached to the event.
	ListIDsByEventID(ctx context.Context, eventID int64) ([]int64, error)
}

// EntityService defines the guarded business logic shared by all kinds.
type EntityService interface {
	Kind() Kind
	List(ctx context.Context) ([]*Entity, error)
	Get(ctx context.Context, id int64) (*Entity, error)
	Create(ctx context.Context, name, description string) (*Entity, error)
	Update(ctx context.Context, id int64, name, description string) (*Entity, error)
	// Delete removes the entity unless it is still attached to an event,
	// in which case it returns *InUseError.
	Delete(ctx context.Context, id int64) error
}
