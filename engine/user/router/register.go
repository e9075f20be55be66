package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rosterd/rosterd/engine/user/uc"
)

// RegisterRoutes registers all user routes.
func RegisterRoutes(apiBase *gin.RouterGroup, factory *uc.Factory) {
	handler := NewHandler(factory)

	users := apiBase.Group("/users")
	{
		users.GET("", handler.ListUsers)
		users.GET("/cursor", handler.ListUsersCursor)
		users.GET("/:id", handler.GetUser)
		users.PATCH("/statuses", handler.BulkUpdateStatuses)
	}
}
