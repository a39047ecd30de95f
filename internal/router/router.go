package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskmanager/api/handler"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Signup  *apiHandler.SignupHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

// Middleware wraps handlers that need the caller's session.
type Middleware struct {
	Require  func(fasthttp.RequestHandler) fasthttp.RequestHandler
	Optional func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

func New(handlers Handlers, mw Middleware) *router.Router {
	r := router.New()

	r.GET("/health", httpcontext.RequestID(handlers.Health.Check))

	// Auth routes
	r.POST("/api/v1/signup", httpcontext.RequestID(handlers.Signup.Signup))
	r.POST("/api/v1/auth/login", httpcontext.RequestID(handlers.Auth.Login))
	r.POST("/api/v1/auth/logout", httpcontext.RequestID(mw.Require(handlers.Auth.Logout)))
	r.GET("/api/v1/auth/session", httpcontext.RequestID(mw.Require(handlers.Auth.Session)))
	r.GET("/api/v1/auth/providers", httpcontext.RequestID(handlers.Auth.Providers))
	r.GET("/api/v1/auth/{provider}/login", httpcontext.RequestID(handlers.Auth.ProviderLogin))
	r.GET("/api/v1/auth/{provider}/callback", httpcontext.RequestID(handlers.Auth.ProviderCallback))

	// Protected routes
	r.GET("/api/v1/profile", httpcontext.RequestID(mw.Require(handlers.Profile.GetProfile)))

	r.POST("/api/v1/tasks", httpcontext.RequestID(mw.Optional(handlers.Task.CreateTask)))
	r.GET("/api/v1/tasks/{email}", httpcontext.RequestID(mw.Optional(handlers.Task.GetTasks)))

	return r
}
