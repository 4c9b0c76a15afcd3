// Package httpapp assembles the Echo application: routes, session handling,
// the access gate and the error surface.
package httpapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/gate"
	"github.com/assetdesk/assetdesk/internal/http/authn"
	"github.com/assetdesk/assetdesk/internal/http/handlers"
	"github.com/assetdesk/assetdesk/internal/throttle"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h   *handlers.Handlers
	e   *echo.Echo
	srv *http.Server

	access *gate.Gate
}

// NewEchoServer creates the HTTP server with all routes registered.
func NewEchoServer(cfg config.Config, q *db.Queries, pool *pgxpool.Pool, sessions *scs.SessionManager, limiter *throttle.FailureLimiter) (*EchoServer, error) {
	h := &handlers.Handlers{Cfg: cfg, Q: q, Pool: pool, Sessions: sessions, Limiter: limiter}
	es := &EchoServer{
		h:      h,
		e:      echo.New(),
		access: gate.New(gate.DefaultPolicy()),
	}
	es.e.Logger = slog.Default()
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes()
	return es, nil
}

func (es *EchoServer) registerRoutes() {
	es.e.Use(requestIDMiddleware())

	es.e.GET("/healthz", es.h.HandleHealthz)
	es.e.Static("/static", "web/static")

	// Every page runs inside the session middleware and behind the gate;
	// handlers never re-check roles.
	pages := es.e.Group("")
	pages.Use(echo.WrapMiddleware(es.h.Sessions.LoadAndSave))
	pages.Use(authn.Gate(es.access, es.h.Sessions, es.h.Q))
	pages.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   es.h.Cfg.AuthCookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	pages.GET("/", es.h.HandleLanding)
	pages.GET("/login", es.h.HandleLoginGet)
	pages.POST("/login", es.h.HandleLoginPost)
	pages.POST("/logout", es.h.HandleLogoutPost)
	pages.GET("/reset-password", es.h.HandleResetPasswordGet)
	pages.POST("/reset-password", es.h.HandleResetPasswordPost)

	pages.GET("/user", es.h.HandleUserHome)
	pages.GET("/user/assets", es.h.HandleUserAssets)
	pages.GET("/user/assets/new", es.h.HandleUserAssetNew)
	pages.POST("/user/assets", es.h.HandleUserAssetsCreate)
	pages.GET("/user/assets/:id", es.h.HandleUserAssetShow)
	pages.GET("/user/assets/:id/edit", es.h.HandleUserAssetEdit)
	pages.POST("/user/assets/:id/update", es.h.HandleUserAssetUpdate)
	pages.POST("/user/assets/:id/deletion-request", es.h.HandleUserAssetDeletionRequest)

	pages.GET("/admin", es.h.HandleAdminDashboard)
	pages.GET("/admin/assets", es.h.HandleAdminAssets)
	pages.POST("/admin/assets/bulk-delete", es.h.HandleAdminAssetsBulkDelete)
	pages.GET("/admin/departments", es.h.HandleDepartments)
	pages.POST("/admin/departments", es.h.HandleDepartmentsCreate)
	pages.POST("/admin/departments/:id/update", es.h.HandleDepartmentUpdate)
	pages.POST("/admin/departments/:id/delete", es.h.HandleDepartmentDelete)
	pages.GET("/admin/categories", es.h.HandleCategories)
	pages.POST("/admin/categories", es.h.HandleCategoriesCreate)
	pages.POST("/admin/categories/:id/update", es.h.HandleCategoryUpdate)
	pages.POST("/admin/categories/:id/delete", es.h.HandleCategoryDelete)
	pages.GET("/admin/users", es.h.HandleAdminUsers)
	pages.POST("/admin/users", es.h.HandleAdminUsersCreate)
	pages.POST("/admin/users/:id/update", es.h.HandleAdminUserUpdate)
	pages.POST("/admin/users/:id/delete", es.h.HandleAdminUserDelete)
	pages.POST("/admin/users/:id/reset-link", es.h.HandleAdminUserResetLink)
	pages.GET("/admin/deletion-requests", es.h.HandleDeletionRequests)
	pages.POST("/admin/deletion-requests/:id/approve", es.h.HandleDeletionRequestApprove)
	pages.POST("/admin/deletion-requests/:id/reject", es.h.HandleDeletionRequestReject)
}

// requestIDMiddleware tags each request with an id that RenderError can quote
// back to the client as a support reference.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// statusCoder is implemented by errors that carry their own HTTP status.
type statusCoder interface {
	StatusCode() int
}

func httpStatusFromError(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// httpErrorHandler keeps error bodies generic: internal errors render a
// reference the client can quote, everything else gets the bare status text.
// The real cause only ever reaches the log.
func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if r, _ := echo.UnwrapResponse(c.Response()); r != nil && r.Committed {
		return
	}

	status := httpStatusFromError(err)
	switch {
	case status >= http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	case status == http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

// Start starts the HTTP server.
func (es *EchoServer) Start(addr string) error {
	return es.e.Start(addr)
}

// StartServer starts the HTTP server with a custom http.Server.
func (es *EchoServer) StartServer(server *http.Server) error {
	server.Handler = es.e
	es.srv = server
	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (es *EchoServer) Shutdown(ctx context.Context) error {
	if es.srv == nil {
		return nil
	}
	return es.srv.Shutdown(ctx)
}
