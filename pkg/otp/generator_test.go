package otp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewRandomGenerator()

	for i := 0; i < 500; i++ {
		code, err := g.Generate(6)
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
		// The leading digit is never zero, so a displayed code is
		// never shorter than six characters.
		require.NotEqual(t, byte('0'), code[0])
	}
}

func TestGenerateSingleDigit(t *testing.T) {
	g := NewRandomGenerator()

	code, err := g.Generate(1)
	require.NoError(t, err)
	require.Len(t, code, 1)
	require.NotEqual(t, "0", code)
}

func TestGenerateInvalidLength(t *testing.T) {
	g := NewRandomGenerator()

	_, err := g.Generate(0)
	require.Error(t, err)

	_, err = g.Generate(19)
	require.Error(t, err)
}
