package router

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	baserouter "github.com/rosterd/rosterd/engine/infra/server/router"
	"github.com/rosterd/rosterd/engine/user/model"
	"github.com/rosterd/rosterd/engine/user/uc"
)

// BulkStatusUpdateRequest is the payload for PATCH /users/statuses.
type BulkStatusUpdateRequest struct {
	Updates []StatusUpdateEntry `json:"updates" binding:"required,dive"`
}

// StatusUpdateEntry is one (id, status) pair in a bulk request.
type StatusUpdateEntry struct {
	ID     int64  `json:"id"     binding:"required,min=1"`
	Status string `json:"status" binding:"required"`
}

// BulkStatusUpdateResponse reports how many entries were applied.
type BulkStatusUpdateResponse struct {
	Updated int `json:"updated"`
}

// Handler handles user-related HTTP requests.
type Handler struct {
	factory *uc.Factory
}

// NewHandler creates a new user handler.
func NewHandler(factory *uc.Factory) *Handler {
	return &Handler{factory: factory}
}

// ListUsers handles GET /users with offset pagination.
func (h *Handler) ListUsers(c *gin.Context) {
	limit, offset, reqErr := baserouter.ParseLimitOffset(c)
	if reqErr != nil {
		baserouter.RespondError(c, reqErr)
		return
	}
	page, err := h.factory.ListUsers(&uc.ListUsersInput{Limit: limit, Offset: offset}).
		Execute(c.Request.Context())
	if err != nil {
		baserouter.RespondError(c, err)
		return
	}
	baserouter.RespondOK(c, page)
}

// ListUsersCursor handles GET /users/cursor with keyset pagination.
func (h *Handler) ListUsersCursor(c *gin.Context) {
	cursor, limit, reqErr := baserouter.ParseCursor(c)
	if reqErr != nil {
		baserouter.RespondError(c, reqErr)
		return
	}
	page, err := h.factory.ListUsersCursor(&uc.ListUsersCursorInput{Cursor: cursor, Limit: limit}).
		Execute(c.Request.Context())
	if err != nil {
		baserouter.RespondError(c, err)
		return
	}
	baserouter.RespondOK(c, page)
}

// GetUser handles GET /users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.factory.GetUser(id).Execute(c.Request.Context())
	if err != nil {
		baserouter.RespondError(c, mapUserError(err))
		return
	}
	baserouter.RespondOK(c, user)
}

// BulkUpdateStatuses handles PATCH /users/statuses.
func (h *Handler) BulkUpdateStatuses(c *gin.Context) {
	var req BulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		baserouter.RespondError(c, baserouter.NewValidationError("invalid request body", err))
		return
	}
	updates := make([]uc.StatusUpdate, len(req.Updates))
	for i, entry := range req.Updates {
		updates[i] = uc.StatusUpdate{ID: entry.ID, Status: model.Status(entry.Status)}
	}
	applied, err := h.factory.BulkUpdateStatuses(&uc.BulkUpdateStatusesInput{Updates: updates}).
		Execute(c.Request.Context())
	if err != nil {
		baserouter.RespondError(c, mapUserError(err))
		return
	}
	baserouter.RespondOK(c, BulkStatusUpdateResponse{Updated: applied})
}

func parseIDParam(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		baserouter.RespondError(c, baserouter.NewValidationError(param+" must be a positive integer", nil))
		return 0, false
	}
	return id, true
}

// mapUserError translates use case errors into RequestErrors. Unknown errors
// pass through and get rendered as internal failures.
func mapUserError(err error) error {
	var missing *uc.MissingIDsError
	if errors.As(err, &missing) {
		return baserouter.NewNotFoundError(missing.Error(), nil)
	}
	var dupes *uc.DuplicateIDsError
	if errors.As(err, &dupes) {
		return baserouter.NewValidationError(dupes.Error(), nil)
	}
	switch {
	case errors.Is(err, uc.ErrUserNotFound):
		return baserouter.NewNotFoundError("user not found", nil)
	case errors.Is(err, uc.ErrNoUpdates),
		errors.Is(err, uc.ErrTooManyUpdates),
		errors.Is(err, uc.ErrInvalidStatus):
		return baserouter.NewValidationError(err.Error(), nil)
	default:
		return err
	}
}
