// Package auth verifies provider ID tokens. The ledger stores are
// user-agnostic; verification only gates access, it does not partition
// the persisted collections.
package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is the verified user record mapped from token claims.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier validates a provider ID token and returns the identity it
// asserts.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// validateFunc matches idtoken.Validate. Replaced in tests.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier validates Google-issued ID tokens for a configured
// OAuth client ID.
type GoogleVerifier struct {
	clientID string
	validate validateFunc
}

// Ensure GoogleVerifier implements Verifier.
var _ Verifier = (*GoogleVerifier)(nil)

// NewGoogleVerifier creates a verifier for the given OAuth client ID.
func NewGoogleVerifier(clientID string) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("google OAuth client ID is required")
	}
	return &GoogleVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}, nil
}

// Verify validates the token signature and audience, then maps the
// claims to an Identity.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, fmt.Errorf("id token is required")
	}

	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to validate id token: %w", err)
	}

	identity := Identity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		identity.Picture = picture
	}

	return identity, nil
}
