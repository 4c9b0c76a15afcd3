// Package gate decides, for every page request, whether the request may
// proceed or has to be redirected. It is the single access decision point of
// the application: handlers behind it do not re-check roles.
package gate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/assetdesk/assetdesk/internal/auth"
)

// Identity is the authenticated subject of a request. ID is never zero for a
// present identity.
type Identity struct {
	ID int64
}

// Profile carries the account attributes access decisions depend on.
type Profile struct {
	ID   int64
	Role string
}

// Resolver supplies the two lookups a decision needs. The HTTP layer backs
// it with the session manager and the account store; tests inject fakes.
type Resolver interface {
	// ResolveIdentity reports the authenticated subject of the request, if
	// any. An error means the session layer itself failed; the gate refuses
	// to decide and the request fails closed.
	ResolveIdentity(ctx context.Context) (Identity, bool, error)

	// FetchProfile loads the account attributes for an identity. A false
	// found or an error degrades the role to unknown; neither fails the
	// request.
	FetchProfile(ctx context.Context, id int64) (Profile, bool, error)
}

// RoleResolution is the outcome of looking up an identity's role: a known
// role, or unknown. Unknown never grants admin.
type RoleResolution struct {
	role  string
	known bool
}

func KnownRole(role string) RoleResolution {
	return RoleResolution{role: strings.ToLower(strings.TrimSpace(role)), known: true}
}

func UnknownRole() RoleResolution {
	return RoleResolution{}
}

func (r RoleResolution) Known() bool {
	return r.known
}

// Role returns the resolved role; ok is false when the role is unknown.
func (r RoleResolution) Role() (role string, ok bool) {
	return r.role, r.known
}

func (r RoleResolution) IsAdmin() bool {
	return r.known && r.role == auth.RoleAdmin
}

// Action says what the caller must do with the request.
type Action uint8

const (
	ActionAllow Action = iota
	ActionRedirect
)

// Decision is the gate's verdict for one request.
type Decision struct {
	Action Action
	// Target is the redirect location; empty for allows.
	Target string
}

func Allow() Decision {
	return Decision{Action: ActionAllow}
}

func Redirect(target string) Decision {
	return Decision{Action: ActionRedirect, Target: target}
}

// rule inspects one request and either claims it with a decision or passes
// it on to the next rule.
type rule struct {
	name  string
	apply func(in ruleInput) (Decision, bool)
}

type ruleInput struct {
	policy Policy
	path   string
	class  RouteClass
	authed bool
	role   RoleResolution
}

// Gate evaluates requests against an immutable routing policy using an
// ordered rule list. The first rule that claims a request wins; rules after
// it never run, so the order below is load-bearing.
type Gate struct {
	policy Policy
	rules  []rule
}

func New(policy Policy) *Gate {
	return &Gate{
		policy: policy,
		rules: []rule{
			{name: "anonymous on protected", apply: ruleAnonymousOnProtected},
			{name: "non-admin on admin", apply: ruleNonAdminOnAdmin},
			{name: "authenticated on user area", apply: ruleAuthenticatedOnUserArea},
			{name: "authenticated on entry page", apply: ruleAuthenticatedOnEntryPage},
		},
	}
}

func (g *Gate) Policy() Policy {
	return g.policy
}

// Evaluate decides a single request. The decision depends only on the path
// and what the resolver reports, so evaluating the same request twice gives
// the same answer.
//
// Identity-resolution errors are returned to the caller: refusing to decide
// beats guessing the visitor is anonymous, which would bounce signed-in
// users to the login page whenever the session store hiccups. Profile
// errors, by contrast, only cost the visitor their known role.
func (g *Gate) Evaluate(ctx context.Context, path string, res Resolver) (Decision, error) {
	identity, authed, err := res.ResolveIdentity(ctx)
	if err != nil {
		return Decision{}, err
	}

	role := UnknownRole()
	if authed {
		profile, found, perr := res.FetchProfile(ctx, identity.ID)
		switch {
		case perr != nil:
			slog.Warn("profile lookup failed, treating role as unknown", "user_id", identity.ID, "error", perr)
		case !found:
			slog.Warn("no profile for authenticated identity, treating role as unknown", "user_id", identity.ID)
		default:
			role = resolveRole(profile.Role)
			if !role.Known() {
				slog.Warn("unrecognized role on profile, treating as unknown", "user_id", identity.ID, "role", profile.Role)
			}
		}
	}

	in := ruleInput{
		policy: g.policy,
		path:   path,
		class:  g.policy.Classify(path),
		authed: authed,
		role:   role,
	}
	for _, r := range g.rules {
		if d, ok := r.apply(in); ok {
			return d, nil
		}
	}
	return Allow(), nil
}

func resolveRole(raw string) RoleResolution {
	role := strings.ToLower(strings.TrimSpace(raw))
	if !auth.ValidRole(role) {
		return UnknownRole()
	}
	return KnownRole(role)
}

// Anonymous visitors never see a protected page; they are sent to sign in.
func ruleAnonymousOnProtected(in ruleInput) (Decision, bool) {
	if !in.authed && in.class != RoutePublic {
		return Redirect(in.policy.LoginPath), true
	}
	return Decision{}, false
}

// Only a known admin role opens the admin area. Unknown roles are
// deliberately on the non-admin side of this check.
func ruleNonAdminOnAdmin(in ruleInput) (Decision, bool) {
	if in.class == RouteAdminProtected && !in.role.IsAdmin() {
		return Redirect(in.policy.UserHome), true
	}
	return Decision{}, false
}

// The user area only needs an identity; a missing or unknown role does not
// lock a signed-in visitor out of their own pages.
func ruleAuthenticatedOnUserArea(in ruleInput) (Decision, bool) {
	if in.class == RouteUserProtected {
		return Allow(), true
	}
	return Decision{}, false
}

// Signed-in visitors have no business on the login page or the landing
// page; send them home.
func ruleAuthenticatedOnEntryPage(in ruleInput) (Decision, bool) {
	if !in.authed || !in.policy.entryPath(in.path) {
		return Decision{}, false
	}
	if in.role.IsAdmin() {
		return Redirect(in.policy.AdminHome), true
	}
	return Redirect(in.policy.UserHome), true
}
