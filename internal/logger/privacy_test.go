package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPersonName(t *testing.T) {
	t.Run("is stable for the same name", func(t *testing.T) {
		require.Equal(t, HashPersonName("Ravi"), HashPersonName("Ravi"))
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		require.Equal(t, HashPersonName("ravi"), HashPersonName("  Ravi "))
	})

	t.Run("differs across names", func(t *testing.T) {
		require.NotEqual(t, HashPersonName("Ravi"), HashPersonName("Anita"))
	})

	t.Run("never contains the name itself", func(t *testing.T) {
		require.NotContains(t, HashPersonName("Ravi"), "Ravi")
		require.Len(t, HashPersonName("Ravi"), 8)
	})

	t.Run("changes with the salt", func(t *testing.T) {
		t.Setenv("LOG_HASH_SALT", "salt-a")
		InitHashSalt()
		a := HashPersonName("Ravi")

		t.Setenv("LOG_HASH_SALT", "salt-b")
		InitHashSalt()
		b := HashPersonName("Ravi")

		t.Setenv("LOG_HASH_SALT", "")
		InitHashSalt()

		require.NotEqual(t, a, b)
	})
}

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<empty>", SanitizeTitle(""))
	require.Equal(t, "<redacted: 2 words, 10 chars>", SanitizeTitle("Rent split"))
	require.NotContains(t, SanitizeTitle("Sharma General Store"), "Sharma")
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<empty>", SanitizeText(""))
	require.Equal(t, "<5 chars>", SanitizeText("short"))

	long := SanitizeText("a fairly long note about money")
	require.Contains(t, long, "...")
	require.Contains(t, long, "30 chars")
}
