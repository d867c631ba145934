package httpapi

import "github.com/labstack/echo/v4"

type Router struct {
	userHandler    *UserHandler
	authMiddleware *AuthMiddleware
}

func NewRouter(userHandler *UserHandler, authMiddleware *AuthMiddleware) *Router {
	return &Router{userHandler: userHandler, authMiddleware: authMiddleware}
}

// RegisterRoutes mounts the API under /api/user.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", HealthCheck)

	user := e.Group("/api/user")
	{
		user.POST("/login", r.userHandler.Login)
		user.POST("/signup", r.userHandler.Signup)
		user.POST("/refresh", r.userHandler.Refresh)

		user.GET("/info", r.userHandler.Info, r.authMiddleware.Authenticate)
		user.POST("/logout", r.userHandler.Logout, r.authMiddleware.Authenticate)
	}
}
