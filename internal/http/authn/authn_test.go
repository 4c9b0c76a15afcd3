package authn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v5"

	"github.com/assetdesk/assetdesk/internal/db"
	"github.com/assetdesk/assetdesk/internal/gate"
)

func TestSanitizeNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace", in: "   ", want: ""},
		{name: "root", in: "/", want: ""},
		{name: "ok_path", in: "/user/assets", want: "/user/assets"},
		{name: "ok_path_query", in: "/user/assets?status=retired", want: "/user/assets?status=retired"},
		{name: "ok_root_query", in: "/?foo=bar", want: "/?foo=bar"},
		{name: "absolute_url", in: "https://evil.example/", want: ""},
		{name: "protocol_relative", in: "//evil.example/", want: ""},
		{name: "triple_slash", in: "///evil.example/", want: ""},
		{name: "backslash", in: "/\\evil.example/", want: ""},
		{name: "encoded_slash", in: "/%2f%2fevil.example/", want: ""},
		{name: "encoded_backslash", in: "/%5cevil.example/", want: ""},
		{name: "login_path", in: "/login", want: ""},
		{name: "login_subpath", in: "/login/reset", want: ""},
		{name: "newline", in: "/\n/evil", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeNext(tt.in); got != tt.want {
				t.Fatalf("SanitizeNext(%q)=%q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

// fakeDB hands every QueryRow the same canned row. Exec and Query report the
// call instead of succeeding; the gate path must never reach them.
type fakeDB struct {
	row pgx.Row
}

func (f fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected Exec")
}

func (f fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (f fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.row
}

type authUserRow struct {
	user db.AuthUser
	err  error
}

func (r authUserRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.user.ID
	*(dest[1].(*string)) = r.user.Email
	*(dest[2].(*string)) = r.user.PasswordHash
	*(dest[3].(*string)) = r.user.Role
	*(dest[4].(*bool)) = r.user.IsActive
	*(dest[5].(*pgtype.Timestamptz)) = r.user.LastLoginAt
	*(dest[6].(*string)) = r.user.LastLoginIp
	*(dest[7].(*time.Time)) = r.user.CreatedAt
	return nil
}

func activeUserRow(id int64, role string) authUserRow {
	return authUserRow{user: db.AuthUser{
		ID:           id,
		Email:        "person@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}}
}

func newGateContext(t *testing.T, sessions *scs.SessionManager, method, target string) (*echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessionCtx, err := sessions.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("sessions.Load() error = %v", err)
	}
	c.SetRequest(c.Request().WithContext(sessionCtx))
	return c, rec
}

func runGate(c *echo.Context, sessions *scs.SessionManager, row pgx.Row, next echo.HandlerFunc) error {
	mw := Gate(gate.New(gate.DefaultPolicy()), sessions, db.New(fakeDB{row: row}))
	return mw(next)(c)
}

func failingNext(t *testing.T) echo.HandlerFunc {
	return func(c *echo.Context) error {
		t.Fatal("next handler ran, want redirect before it")
		return nil
	}
}

func TestGateRedirectsAnonymousToLoginWithNext(t *testing.T) {
	sessions := scs.New()
	c, rec := newGateContext(t, sessions, http.MethodGet, "http://example.com/admin/departments")

	err := runGate(c, sessions, authUserRow{err: errors.New("db must not be queried")}, failingNext(t))
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got, want := rec.Header().Get("Location"), "/login?next=%2Fadmin%2Fdepartments"; got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func TestGateOmitsNextForNonGETRequests(t *testing.T) {
	sessions := scs.New()
	c, rec := newGateContext(t, sessions, http.MethodPost, "http://example.com/user/assets")

	err := runGate(c, sessions, authUserRow{err: errors.New("db must not be queried")}, failingNext(t))
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}

	if got := rec.Header().Get("Location"); got != "/login" {
		t.Fatalf("Location = %q, want %q", got, "/login")
	}
}

func TestGateAllowsAnonymousOnLanding(t *testing.T) {
	sessions := scs.New()
	c, _ := newGateContext(t, sessions, http.MethodGet, "http://example.com/")

	called := false
	err := runGate(c, sessions, authUserRow{err: errors.New("db must not be queried")}, func(c *echo.Context) error {
		called = true
		if _, ok := PrincipalFromContext(c); ok {
			t.Fatal("anonymous request carries a principal")
		}
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}
	if !called {
		t.Fatal("next handler did not run")
	}
}

func TestGateAttachesPrincipalOnAllow(t *testing.T) {
	sessions := scs.New()
	c, _ := newGateContext(t, sessions, http.MethodGet, "http://example.com/admin/departments")
	sessions.Put(c.Request().Context(), SessionKeyUserID, int64(7))

	called := false
	err := runGate(c, sessions, activeUserRow(7, "admin"), func(c *echo.Context) error {
		called = true
		p, ok := PrincipalFromContext(c)
		if !ok {
			t.Fatal("no principal on allowed request")
		}
		if p.UserID != 7 || p.Role != "admin" {
			t.Fatalf("principal = %+v, want user 7 with admin role", p)
		}
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}
	if !called {
		t.Fatal("next handler did not run")
	}
}

func TestGateSendsNonAdminToUserHome(t *testing.T) {
	sessions := scs.New()
	c, rec := newGateContext(t, sessions, http.MethodGet, "http://example.com/admin")
	sessions.Put(c.Request().Context(), SessionKeyUserID, int64(3))

	err := runGate(c, sessions, activeUserRow(3, "user"), failingNext(t))
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/user" {
		t.Fatalf("Location = %q, want %q", got, "/user")
	}
}

func TestGateDestroysStaleSession(t *testing.T) {
	sessions := scs.New()
	c, rec := newGateContext(t, sessions, http.MethodGet, "http://example.com/user/assets")
	sessions.Put(c.Request().Context(), SessionKeyUserID, int64(42))

	err := runGate(c, sessions, authUserRow{err: pgx.ErrNoRows}, failingNext(t))
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}

	if got, want := rec.Header().Get("Location"), "/login?next=%2Fuser%2Fassets"; got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
	if got := sessions.GetInt64(c.Request().Context(), SessionKeyUserID); got != 0 {
		t.Fatalf("session user id after stale session = %d, want destroyed", got)
	}
}

func TestGateFailsClosedOnStoreError(t *testing.T) {
	sessions := scs.New()
	c, _ := newGateContext(t, sessions, http.MethodGet, "http://example.com/user/assets")
	sessions.Put(c.Request().Context(), SessionKeyUserID, int64(42))

	storeErr := errors.New("connection refused")
	err := runGate(c, sessions, authUserRow{err: storeErr}, failingNext(t))
	if !errors.Is(err, storeErr) {
		t.Fatalf("Gate() error = %v, want %v", err, storeErr)
	}
}

func TestGateRedirectsSignedInUserOffEntryPages(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		target string
		want   string
	}{
		{name: "admin_on_login", role: "admin", target: "http://example.com/login", want: "/admin"},
		{name: "user_on_login", role: "user", target: "http://example.com/login", want: "/user"},
		{name: "admin_on_root", role: "admin", target: "http://example.com/", want: "/admin"},
		{name: "user_on_root", role: "user", target: "http://example.com/", want: "/user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := scs.New()
			c, rec := newGateContext(t, sessions, http.MethodGet, tt.target)
			sessions.Put(c.Request().Context(), SessionKeyUserID, int64(9))

			err := runGate(c, sessions, activeUserRow(9, tt.role), failingNext(t))
			if err != nil {
				t.Fatalf("Gate() error = %v", err)
			}

			if got := rec.Header().Get("Location"); got != tt.want {
				t.Fatalf("Location = %q, want %q", got, tt.want)
			}
		})
	}
}
