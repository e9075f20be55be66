package router

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rosterd/rosterd/engine/group/uc"
	baserouter "github.com/rosterd/rosterd/engine/infra/server/router"
)

// RemoveUserResponse confirms a membership removal.
type RemoveUserResponse struct {
	GroupID int64 `json:"group_id"`
	UserID  int64 `json:"user_id"`
}

// Handler handles group-related HTTP requests.
type Handler struct {
	factory *uc.Factory
}

// NewHandler creates a new group handler.
func NewHandler(factory *uc.Factory) *Handler {
	return &Handler{factory: factory}
}

// ListGroups handles GET /groups with offset pagination.
func (h *Handler) ListGroups(c *gin.Context) {
	limit, offset, reqErr := baserouter.ParseLimitOffset(c)
	if reqErr != nil {
		baserouter.RespondError(c, reqErr)
		return
	}
	page, err := h.factory.ListGroups(&uc.ListGroupsInput{Limit: limit, Offset: offset}).
		Execute(c.Request.Context())
	if err != nil {
		baserouter.RespondError(c, err)
		return
	}
	baserouter.RespondOK(c, page)
}

// GetGroup handles GET /groups/:id.
func (h *Handler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	group, err := h.factory.GetGroup(id).Execute(c.Request.Context())
	if err != nil {
		baserouter.RespondError(c, mapGroupError(err))
		return
	}
	baserouter.RespondOK(c, group)
}

// RemoveUser handles DELETE /groups/:id/users/:userId.
func (h *Handler) RemoveUser(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	if err := h.factory.RemoveUser(groupID, userID).Execute(c.Request.Context()); err != nil {
		baserouter.RespondError(c, mapGroupError(err))
		return
	}
	baserouter.RespondOK(c, RemoveUserResponse{GroupID: groupID, UserID: userID})
}

func parseIDParam(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		baserouter.RespondError(c, baserouter.NewValidationError(param+" must be a positive integer", nil))
		return 0, false
	}
	return id, true
}

// mapGroupError translates use case errors into RequestErrors.
func mapGroupError(err error) error {
	switch {
	case errors.Is(err, uc.ErrGroupNotFound):
		return baserouter.NewNotFoundError("group not found", nil)
	case errors.Is(err, uc.ErrUserNotFound):
		return baserouter.NewNotFoundError("user not found", nil)
	case errors.Is(err, uc.ErrUserNotInGroup):
		return baserouter.NewConflictError("user is not a member of this group", nil)
	default:
		return err
	}
}
