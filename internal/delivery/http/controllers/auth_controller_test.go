package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
	"conferencehub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	signUpRes *domain.User
	signUpErr error
	loginTok  string
	loginRes  *domain.User
	loginErr  error
	getRes    *domain.User
	getErr    error

	lastSignUpEmail string
	lastGetID       int64
}

func (f *fakeUserService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastSignUpEmail = email
	return f.signUpRes, f.signUpErr
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return f.loginTok, f.loginRes, f.loginErr
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.lastGetID = id
	return f.getRes, f.getErr
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeUserService
		wantStatus  int
		wantMsgPart string
	}{
		{
			name: "created",
			body: `{"email":"ada@example.com","password":"correct horse","name":"Ada"}`,
			svc: &fakeUserService{
				signUpRes: &domain.User{ID: 1, Email: "ada@example.com", Name: "Ada"},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "invalid email",
			body:        `{"email":"nope","password":"correct horse","name":"Ada"}`,
			svc:         &fakeUserService{},
			wantStatus:  http.StatusBadRequest,
			wantMsgPart: "email format is invalid",
		},
		{
			name:        "short password",
			body:        `{"email":"ada@example.com","password":"short","name":"Ada"}`,
			svc:         &fakeUserService{},
			wantStatus:  http.StatusBadRequest,
			wantMsgPart: "password must be at least 8 characters",
		},
		{
			name:        "duplicate email",
			body:        `{"email":"ada@example.com","password":"correct horse","name":"Ada"}`,
			svc:         &fakeUserService{signUpErr: domain.ErrDuplicateEmail},
			wantStatus:  http.StatusBadRequest,
			wantMsgPart: "email already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			ctrl.SignUp(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec.Body)
			if tt.wantMsgPart != "" {
				require.NotNil(t, resp.Error)
				assert.Contains(t, resp.Error.Message, tt.wantMsgPart)
				return
			}
			require.Nil(t, resp.Error)
			user, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "ada@example.com", user["email"])
			// Credentials never leave the server.
			assert.NotContains(t, user, "password_hash")
			assert.NotContains(t, user, "salt")
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	t.Run("success returns token and user", func(t *testing.T) {
		svc := &fakeUserService{
			loginTok: "jwt-token",
			loginRes: &domain.User{ID: 1, Email: "ada@example.com", Name: "Ada"},
		}
		ctrl := NewAuthController(testLogger, svc)

		body := `{"email":"ada@example.com","password":"correct horse"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeEnvelope(t, rec.Body)
		require.Nil(t, resp.Error)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "jwt-token", data["token"])
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeUserService{loginErr: services.ErrInvalidCredentials})

		body := `{"email":"ada@example.com","password":"wrong horse"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeEnvelope(t, rec.Body)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeUnauthorized, resp.Error.Code)
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeUserService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthController_GetMe(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		svc := &fakeUserService{getRes: &domain.User{ID: 42, Email: "ada@example.com", Name: "Ada"}}
		ctrl := NewAuthController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		ctx := middleware.SetUserID(req.Context(), 42)
		rec := httptest.NewRecorder()
		ctrl.GetMe(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(42), svc.lastGetID)
	})

	t.Run("no auth context is 401", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeUserService{})

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		ctrl.GetMe(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
