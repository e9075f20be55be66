package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rosterd/rosterd/engine/group/uc"
)

// RegisterRoutes registers all group routes.
func RegisterRoutes(apiBase *gin.RouterGroup, factory *uc.Factory) {
	handler := NewHandler(factory)

	groups := apiBase.Group("/groups")
	{
		groups.GET("", handler.ListGroups)
		groups.GET("/:id", handler.GetGroup)
		groups.DELETE("/:id/users/:userId", handler.RemoveUser)
	}
}
