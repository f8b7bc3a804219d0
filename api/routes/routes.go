package routes

import (
	"stroymonitor/api/handler"
	"stroymonitor/api/middleware"
	"stroymonitor/internal/entity"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	AuthMiddleware middleware.AuthMiddleware
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		AuthMiddleware: authMiddleware,
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/login", r.Auth.Login)
	e.POST("/auth/verify", r.Auth.Verify)
	e.POST("/auth/logout", r.Auth.Logout)
	e.POST("/auth/send-code", r.Auth.SendCode)
	e.POST("/auth/verify-code", r.Auth.VerifyCode)

	admin := e.Group("/admin", r.AuthMiddleware.RequireSession, middleware.RequireRole(entity.UserRoleAdmin))
	admin.GET("/users", r.Users.ListUsers)
	admin.POST("/users", r.Users.CreateUser)
	admin.PUT("/users/:id", r.Users.UpdateUser)
	admin.POST("/users/:id/password", r.Users.ChangePassword)
	admin.GET("/activity-logs", r.Users.ListActivityLogs)
}
