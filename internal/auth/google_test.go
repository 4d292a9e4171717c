package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestNewGoogleVerifier(t *testing.T) {
	t.Parallel()

	t.Run("requires a client ID", func(t *testing.T) {
		t.Parallel()
		v, err := NewGoogleVerifier("")
		require.Error(t, err)
		require.Nil(t, v)
	})

	t.Run("creates a verifier", func(t *testing.T) {
		t.Parallel()
		v, err := NewGoogleVerifier("client-id.apps.googleusercontent.com")
		require.NoError(t, err)
		require.NotNil(t, v)
	})
}

func TestGoogleVerifierVerify(t *testing.T) {
	t.Parallel()

	t.Run("maps claims to an identity", func(t *testing.T) {
		t.Parallel()
		v := &GoogleVerifier{
			clientID: "client-id",
			validate: func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
				require.Equal(t, "valid-token", token)
				require.Equal(t, "client-id", audience)
				return &idtoken.Payload{
					Subject: "1234567890",
					Claims: map[string]any{
						"email":   "user@example.com",
						"name":    "Test User",
						"picture": "https://example.com/avatar.png",
					},
				}, nil
			},
		}

		identity, err := v.Verify(context.Background(), "valid-token")
		require.NoError(t, err)
		require.Equal(t, "1234567890", identity.Subject)
		require.Equal(t, "user@example.com", identity.Email)
		require.Equal(t, "Test User", identity.Name)
		require.Equal(t, "https://example.com/avatar.png", identity.Picture)
	})

	t.Run("tolerates missing optional claims", func(t *testing.T) {
		t.Parallel()
		v := &GoogleVerifier{
			clientID: "client-id",
			validate: func(context.Context, string, string) (*idtoken.Payload, error) {
				return &idtoken.Payload{Subject: "sub-only", Claims: map[string]any{}}, nil
			},
		}

		identity, err := v.Verify(context.Background(), "token")
		require.NoError(t, err)
		require.Equal(t, "sub-only", identity.Subject)
		require.Empty(t, identity.Email)
	})

	t.Run("propagates validation failure", func(t *testing.T) {
		t.Parallel()
		v := &GoogleVerifier{
			clientID: "client-id",
			validate: func(context.Context, string, string) (*idtoken.Payload, error) {
				return nil, errors.New("token expired")
			},
		}

		_, err := v.Verify(context.Background(), "stale-token")
		require.Error(t, err)
		require.Contains(t, err.Error(), "token expired")
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		t.Parallel()
		v := &GoogleVerifier{clientID: "client-id"}

		_, err := v.Verify(context.Background(), "")
		require.Error(t, err)
	})
}
