package domain

import (
	"context"
	"time"
)

// Ticket represents a member's registration for an event. Code is the
// printable ticket identifier shown to the attendee.
// swagger:model Ticket
type Ticket struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketRepository defines the interface for ticket storage
type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id int64) (*Ticket, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Ticket, error)
	Delete(ctx context.Context, id int64) error
}

// TicketService defines the business logic for event registration.
type TicketService interface {
	// Register creates a ticket for the user on the event and sends a
	// confirmation email. One ticket per user per event.
	Register(ctx context.Context, eventID, userID int64) (*Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]*Ticket, error)
	// Cancel removes the ticket. Tickets not owned by the caller are
	// reported as not found.
	Cancel(ctx context.Context, ticketID, userID int64) error
}
