package gate

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()

	tests := []struct {
		path string
		want RouteClass
	}{
		{path: "/", want: RoutePublic},
		{path: "/login", want: RoutePublic},
		{path: "/healthz", want: RoutePublic},
		{path: "/reset-password", want: RoutePublic},
		{path: "/static/app.css", want: RoutePublic},
		{path: "", want: RoutePublic},
		{path: "/admin", want: RouteAdminProtected},
		{path: "/admin/", want: RouteAdminProtected},
		{path: "/admin/departments", want: RouteAdminProtected},
		{path: "/administrators", want: RouteAdminProtected}, // literal prefix match
		{path: "/user", want: RouteUserProtected},
		{path: "/user/assets/7", want: RouteUserProtected},
		{path: "/users", want: RouteUserProtected}, // literal prefix match
	}

	for _, tt := range tests {
		got := p.Classify(tt.path)
		if got != tt.want {
			t.Fatalf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
		if second := p.Classify(tt.path); second != got {
			t.Fatalf("Classify(%q) unstable: %v then %v", tt.path, got, second)
		}
	}
}

func TestRouteClassString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class RouteClass
		want  string
	}{
		{class: RoutePublic, want: "public"},
		{class: RouteAdminProtected, want: "admin"},
		{class: RouteUserProtected, want: "user"},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
