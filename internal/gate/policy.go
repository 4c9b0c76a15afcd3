package gate

import "strings"

// RouteClass is the protection class a request path falls into. Every path
// has exactly one class.
type RouteClass uint8

const (
	RoutePublic RouteClass = iota
	RouteAdminProtected
	RouteUserProtected
)

func (rc RouteClass) String() string {
	switch rc {
	case RouteAdminProtected:
		return "admin"
	case RouteUserProtected:
		return "user"
	default:
		return "public"
	}
}

// Policy is the routing table the gate decides against. Values are fixed at
// construction; tests inject alternate tables instead of mutating this one.
type Policy struct {
	// AdminPrefix and UserPrefix mark the two protected areas.
	AdminPrefix string
	UserPrefix  string

	// LoginPath and RootPath are the exact entry pages that bounce an
	// already-authenticated visitor to their role home.
	LoginPath string
	RootPath  string

	// AdminHome and UserHome are where authenticated visitors land.
	AdminHome string
	UserHome  string
}

func DefaultPolicy() Policy {
	return Policy{
		AdminPrefix: "/admin",
		UserPrefix:  "/user",
		LoginPath:   "/login",
		RootPath:    "/",
		AdminHome:   "/admin",
		UserHome:    "/user",
	}
}

// Classify assigns a protection class to a request path. Matching is a
// literal prefix check against the two protected areas; everything else,
// including the login page and the root, is public.
func (p Policy) Classify(path string) RouteClass {
	switch {
	case strings.HasPrefix(path, p.AdminPrefix):
		return RouteAdminProtected
	case strings.HasPrefix(path, p.UserPrefix):
		return RouteUserProtected
	default:
		return RoutePublic
	}
}

// entryPath reports whether path is one of the exact locations that send an
// authenticated visitor to their role home instead of rendering.
func (p Policy) entryPath(path string) bool {
	return path == p.LoginPath || path == p.RootPath
}
