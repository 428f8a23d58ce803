package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

// Name and description bounds shared by all entity kinds.
const (
	minNameLength        = 3
	maxNameLength        = 255
	maxDescriptionLength = 1000
)

// EntityRequest is the request body for POST and PUT on every entity family.
type EntityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate implements Validator. Returns error messages for required and length rules.
func (e EntityRequest) Validate() []string {
	var errs []string
	switch n := utf8.RuneCountInString(e.Name); {
	case n == 0:
		errs = append(errs, "name is required")
	case n < minNameLength:
		errs = append(errs, fmt.Sprintf("name must be at least %d characters", minNameLength))
	case n > maxNameLength:
		errs = append(errs, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	switch d := utf8.RuneCountInString(e.Description); {
	case d == 0:
		errs = append(errs, "description is required")
	case d > maxDescriptionLength:
		errs = append(errs, fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	return errs
}

// EntitySuccessResponse is the success envelope for single-entity responses.
type EntitySuccessResponse struct {
	Data  *domain.Entity    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EntityListSuccessResponse is the success envelope for entity list responses.
type EntityListSuccessResponse struct {
	Data  []*domain.Entity  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EntityController serves the CRUD routes for one entity family. One
// instance is registered per kind; the kind only changes route paths and
// error wording, never behavior.
type EntityController struct {
	Logger  *slog.Logger
	Service domain.EntityService
}

// NewEntityController returns a controller bound to one entity kind's service.
func NewEntityController(logger *slog.Logger, svc domain.EntityService) *EntityController {
	return &EntityController{
		Logger:  logger,
		Service: svc,
	}
}

// Kind returns the entity kind this controller serves.
func (c *EntityController) Kind() domain.Kind {
	return c.Service.Kind()
}

// List godoc
// @Summary List entities of one family
// @Description Returns all records of the family (sponsors, caterings, categories, locations, resources, or prelegents) ordered by name. Public.
// @Tags entities
// @Produce json
// @Success 200 {object} controllers.EntityListSuccessResponse "data is an array ordered by name"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /{entities} [get]
func (c *EntityController) List(w http.ResponseWriter, r *http.Request) {
	entities, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entities)
}

// Get godoc
// @Summary Get one entity by ID
// @Description Returns a single record of the family. Public.
// @Tags entities
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {object} controllers.EntitySuccessResponse "data contains the entity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /{entities}/{id} [get]
func (c *EntityController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	entity, err := c.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, c.Kind().Singular+" not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entity)
}

// Create godoc
// @Summary Create an entity
// @Description Creates a record in the family. Name and description must be unique within the family. Admin only.
// @Tags entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EntityRequest true "Entity data"
// @Success 201 {object} controllers.EntitySuccessResponse "data contains the created entity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (validation or duplicate name/description)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /{entities} [post]
func (c *EntityController) Create(w http.ResponseWriter, r *http.Request) {
	var req EntityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entity, err := c.Service.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, c.Kind().Singular+" name or description already in use")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entity)
}

// Update godoc
// @Summary Update an entity
// @Description Replaces the record's name and description. Keeping the current name or description is allowed; colliding with a different record is a conflict. Admin only.
// @Tags entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entity ID"
// @Param body body EntityRequest true "Entity data"
// @Success 200 {object} controllers.EntitySuccessResponse "data contains the updated entity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name/description used by another record)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /{entities}/{id} [put]
func (c *EntityController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req EntityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entity, err := c.Service.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, c.Kind().Singular+" not found")
			return
		}
		if errors.Is(err, domain.ErrDuplicate) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, c.Kind().Singular+" name or description already in use")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entity)
}

// Delete godoc
// @Summary Delete an entity
// @Description Deletes the record unless it is still attached to at least one event, in which case the delete is blocked. Admin only.
// @Tags entities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entity ID"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (still assigned to events)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /{entities}/{id} [delete]
func (c *EntityController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, c.Kind().Singular+" not found")
			return
		}
		var inUse *domain.InUseError
		if errors.As(err, &inUse) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict,
				fmt.Sprintf("cannot delete %s: %s", c.Kind().Singular, inUse.Error()))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteNoContent(w)
}
