package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencehub/internal/domain"

	"github.com/google/uuid"
)

type ticketService struct {
	ticketRepo     domain.TicketRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailSvc       domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewTicketService creates a TicketService for member event registration.
func NewTicketService(ticketRepo domain.TicketRepository, eventRepo domain.EventRepository, userRepo domain.UserRepository, emailSvc domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.TicketService {
	return &ticketService{
		ticketRepo:     ticketRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailSvc:       emailSvc,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *ticketService) Register(ctx context.Context, eventID, userID int64) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	ticket := &domain.Ticket{
		Code:      uuid.NewString(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	// Confirmation email is best effort: the ticket stands even if the mail
	// does not go out.
	if s.emailSvc != nil {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("ticket confirmation skipped", "ticket_id", ticket.ID, "err", err)
			return ticket, nil
		}
		data := &domain.TicketConfirmationEmailData{
			Email:      user.Email,
			Name:       user.Name,
			EventName:  event.Name,
			EventDate:  event.Date,
			TicketCode: ticket.Code,
		}
		if err := s.emailSvc.SendTicketConfirmation(ctx, data); err != nil {
			s.logger.Warn("ticket confirmation failed", "ticket_id", ticket.ID, "err", err)
		}
	}
	return ticket, nil
}

func (s *ticketService) ListByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tickets, err := s.ticketRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	if tickets == nil {
		tickets = []*domain.Ticket{}
	}
	return tickets, nil
}

func (s *ticketService) Cancel(ctx context.Context, ticketID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get ticket: %w", err)
	}
	// Other users' tickets look like missing tickets.
	if ticket.UserID != userID {
		return domain.ErrNotFound
	}
	if err := s.ticketRepo.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}
