// Package providers holds the credential verification strategies behind the
// login form. Password is the only one wired up today; the interface is the
// seam an SSO integration would plug into.
package providers

import (
	"context"

	"github.com/assetdesk/assetdesk/internal/auth"
)

type Provider interface {
	Name() string
	// Authenticate verifies the credentials and returns the signed-in
	// principal. Bad credentials, unknown emails and disabled accounts all
	// come back as auth.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (auth.Principal, error)
}
