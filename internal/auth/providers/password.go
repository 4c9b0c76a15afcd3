package providers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/db"
)

// PasswordProvider checks a password against the argon2id hash stored on the
// account row.
type PasswordProvider struct {
	Q *db.Queries
}

func NewPasswordProvider(q *db.Queries) *PasswordProvider {
	return &PasswordProvider{Q: q}
}

func (p *PasswordProvider) Name() string {
	return auth.MethodPassword
}

func (p *PasswordProvider) Authenticate(ctx context.Context, email, password string) (auth.Principal, error) {
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	user, err := p.Q.GetAuthUserByEmail(ctx, email)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return auth.Principal{}, auth.ErrInvalidCredentials
	case err != nil:
		return auth.Principal{}, err
	}

	// Disabled accounts fail the same way as a wrong password; the form
	// should not reveal which it was.
	if !user.IsActive {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return auth.Principal{}, err
	}
	if !match {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	return auth.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Method: auth.MethodPassword,
	}, nil
}
