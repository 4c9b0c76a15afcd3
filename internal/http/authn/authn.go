// Package authn connects the access gate to the HTTP layer: it backs the
// gate's resolver with the session store and the account table, applies the
// gate's decision to each request, and exposes the signed-in principal to
// handlers.
package authn

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/gate"
	"github.com/assetdesk/assetdesk/internal/metrics"
)

const (
	ContextKeyPrincipal = "auth_principal"

	SessionKeyUserID = "auth_user_id"
)

func PrincipalFromContext(c *echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(auth.Principal)
	return p, ok
}

// requestResolver adapts one request's session and account lookup to
// gate.Resolver. It memoizes the account row so an evaluation costs at most
// one query.
type requestResolver struct {
	sessions *scs.SessionManager
	q        *db.Queries

	loaded bool
	found  bool
	user   db.AuthUser
}

// ResolveIdentity maps the session to an active account. A session pointing
// at a deleted or deactivated account is destroyed and reported as absent; a
// store failure is returned so the gate can refuse to decide.
func (r *requestResolver) ResolveIdentity(ctx context.Context) (gate.Identity, bool, error) {
	userID := r.sessions.GetInt64(ctx, SessionKeyUserID)
	if userID <= 0 {
		r.loaded = true
		return gate.Identity{}, false, nil
	}

	user, err := r.q.GetAuthUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = r.sessions.Destroy(ctx)
			r.loaded = true
			return gate.Identity{}, false, nil
		}
		return gate.Identity{}, false, err
	}
	if !user.IsActive {
		_ = r.sessions.Destroy(ctx)
		r.loaded = true
		return gate.Identity{}, false, nil
	}

	r.loaded = true
	r.found = true
	r.user = user
	return gate.Identity{ID: user.ID}, true, nil
}

func (r *requestResolver) FetchProfile(ctx context.Context, id int64) (gate.Profile, bool, error) {
	if r.loaded && r.found && r.user.ID == id {
		return gate.Profile{ID: r.user.ID, Role: r.user.Role}, true, nil
	}

	user, err := r.q.GetAuthUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gate.Profile{}, false, nil
		}
		return gate.Profile{}, false, err
	}
	return gate.Profile{ID: user.ID, Role: user.Role}, true, nil
}

func (r *requestResolver) principal() (auth.Principal, bool) {
	if !r.found {
		return auth.Principal{}, false
	}
	return auth.Principal{
		UserID: r.user.ID,
		Email:  r.user.Email,
		Role:   r.user.Role,
		Method: auth.MethodPassword,
	}, true
}

// Gate evaluates every request against g and either lets it through with the
// principal attached or issues the redirect the gate chose. It must run
// inside the session middleware.
func Gate(g *gate.Gate, sessions *scs.SessionManager, q *db.Queries) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			path := c.Request().URL.Path
			res := &requestResolver{sessions: sessions, q: q}

			decision, err := g.Evaluate(c.Request().Context(), path, res)
			if err != nil {
				return err
			}

			class := g.Policy().Classify(path).String()
			if decision.Action == gate.ActionRedirect {
				metrics.GateDecisionsTotal.WithLabelValues(class, "redirect").Inc()
				return c.Redirect(http.StatusSeeOther, redirectLocation(c, decision.Target, g.Policy().LoginPath))
			}

			metrics.GateDecisionsTotal.WithLabelValues(class, "allow").Inc()
			if p, ok := res.principal(); ok {
				c.Set(ContextKeyPrincipal, p)
			}
			return next(c)
		}
	}
}

// redirectLocation appends a return-to hint when bouncing a GET request to
// the login page, so sign-in can bring the visitor back.
func redirectLocation(c *echo.Context, target, loginPath string) string {
	if target != loginPath || c.Request().Method != http.MethodGet {
		return target
	}
	next := SanitizeNext(c.Request().URL.RequestURI())
	if next == "" {
		return target
	}
	return target + "?next=" + url.QueryEscape(next)
}

// SanitizeNext validates a return-to path taken from the request. Only
// same-site paths survive; anything that could leave the site or loop back
// into the login page collapses to empty.
func SanitizeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || len(next) > 2048 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if strings.ContainsAny(next, "\\\n\r") {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || u.Scheme != "" {
		return ""
	}
	// Path is the decoded form; catch separators smuggled in as %2f or %5c.
	if strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, "\\") {
		return ""
	}
	if u.Path == "/login" || strings.HasPrefix(u.Path, "/login/") {
		return ""
	}
	if u.Path == "/" && u.RawQuery == "" {
		return ""
	}
	return next
}
