package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTicketService implements domain.TicketService for handler tests.
type fakeTicketService struct {
	registerRes *domain.Ticket
	registerErr error
	listRes     []*domain.Ticket
	listErr     error
	cancelErr   error

	lastEventID  int64
	lastUserID   int64
	lastTicketID int64
}

func (f *fakeTicketService) Register(ctx context.Context, eventID, userID int64) (*domain.Ticket, error) {
	f.lastEventID = eventID
	f.lastUserID = userID
	return f.registerRes, f.registerErr
}

func (f *fakeTicketService) ListByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	f.lastUserID = userID
	return f.listRes, f.listErr
}

func (f *fakeTicketService) Cancel(ctx context.Context, ticketID, userID int64) error {
	f.lastTicketID = ticketID
	f.lastUserID = userID
	return f.cancelErr
}

func TestTicketController_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeTicketService{
			registerRes: &domain.Ticket{ID: 15, Code: "a1b2c3", EventID: 1, UserID: 42},
		}
		ctrl := NewTicketController(testLogger, svc)

		req := httptest.NewRequest(http.MethodPost, "/events/1/tickets", nil)
		req.SetPathValue("id", "1")
		ctx := middleware.SetUserID(req.Context(), 42)
		rec := httptest.NewRecorder()
		ctrl.Register(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(1), svc.lastEventID)
		assert.Equal(t, int64(42), svc.lastUserID)
	})

	t.Run("no auth context is 401", func(t *testing.T) {
		ctrl := NewTicketController(testLogger, &fakeTicketService{})

		req := httptest.NewRequest(http.MethodPost, "/events/1/tickets", nil)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()
		ctrl.Register(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown event", func(t *testing.T) {
		ctrl := NewTicketController(testLogger, &fakeTicketService{registerErr: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodPost, "/events/99/tickets", nil)
		req.SetPathValue("id", "99")
		ctx := middleware.SetUserID(req.Context(), 42)
		rec := httptest.NewRecorder()
		ctrl.Register(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("already registered", func(t *testing.T) {
		ctrl := NewTicketController(testLogger, &fakeTicketService{registerErr: domain.ErrAlreadyRegistered})

		req := httptest.NewRequest(http.MethodPost, "/events/1/tickets", nil)
		req.SetPathValue("id", "1")
		ctx := middleware.SetUserID(req.Context(), 42)
		rec := httptest.NewRecorder()
		ctrl.Register(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeEnvelope(t, rec.Body)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
	})
}

func TestTicketController_ListMine(t *testing.T) {
	svc := &fakeTicketService{
		listRes: []*domain.Ticket{{ID: 15, Code: "a1b2c3", EventID: 1, UserID: 42}},
	}
	ctrl := NewTicketController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/users/me/tickets", nil)
	ctx := middleware.SetUserID(req.Context(), 42)
	rec := httptest.NewRecorder()
	ctrl.ListMine(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.lastUserID)
	resp := decodeEnvelope(t, rec.Body)
	require.Nil(t, resp.Error)
}

func TestTicketController_Cancel(t *testing.T) {
	t.Run("success is 204", func(t *testing.T) {
		svc := &fakeTicketService{}
		ctrl := NewTicketController(testLogger, svc)

		req := httptest.NewRequest(http.MethodDelete, "/tickets/15", nil)
		req.SetPathValue("id", "15")
		ctx := middleware.SetUserID(req.Context(), 42)
		rec := httptest.NewRecorder()
		ctrl.Cancel(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(15), svc.lastTicketID)
		assert.Equal(t, int64(42), svc.lastUserID)
	})

	t.Run("foreign or missing ticket is 404", func(t *testing.T) {
		ctrl := NewTicketController(testLogger, &fakeTicketService{cancelErr: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodDelete, "/tickets/15", nil)
		req.SetPathValue("id", "15")
		ctx := middleware.SetUserID(req.Context(), 42)
		rec := httptest.NewRecorder()
		ctrl.Cancel(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
