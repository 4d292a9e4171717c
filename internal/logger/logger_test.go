package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLevel("debug")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLevel("warn")
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("error")
	require.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	// Unknown values fall back to info.
	SetLevel("nonsense")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
