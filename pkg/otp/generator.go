package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// Generator produces verification codes.
type Generator interface {
	Generate(length int) (string, error)
}

// RandomGenerator draws codes uniformly from [10^(length-1), 10^length - 1],
// so the leading digit is never zero and a displayed code is never shorter
// than its nominal length.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) Generate(length int) (string, error) {
	if length < 1 || length > 18 {
		return "", errors.New("code length out of range")
	}

	low := int64(1)
	for i := 1; i < length; i++ {
		low *= 10
	}

	n, err := rand.Int(rand.Reader, big.NewInt(9*low))
	if err != nil {
		return "", fmt.Errorf("read random failed: %w", err)
	}

	return strconv.FormatInt(low+n.Int64(), 10), nil
}
