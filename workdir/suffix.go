package workdir

import (
	"crypto/rand"
	"math/big"
	"path/filepath"
	"strings"
)

// Alphabet holds the 52 symbols a suffix is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	// DefaultBase is the directory sessions are created under.
	DefaultBase = "temp"
	// DefaultSuffixLength gives 52^12 (about 3.9e20) distinct names.
	DefaultSuffixLength = 12
)

// Source returns a uniformly distributed integer in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms
		panic(err)
	}
	return int(v.Int64())
}

// DefaultSource draws from crypto/rand.
var DefaultSource Source = cryptoSource{}

// RandomSuffix returns n characters chosen independently and uniformly
// from Alphabet.
func RandomSuffix(src Source, n int) (string, error) {
	if n < 1 {
		return "", ErrInvalidLength
	}
	if src == nil {
		src = DefaultSource
	}
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(Alphabet[src.IntN(len(Alphabet))])
	}
	return b.String(), nil
}

// NewPath joins base with a fresh random suffix of length n.
func NewPath(src Source, base string, n int) (string, error) {
	if base == "" {
		return "", ErrEmptyBase
	}
	suffix, err := RandomSuffix(src, n)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, suffix), nil
}

// IsSuffix reports whether s could have been produced by RandomSuffix
// with length n.
func IsSuffix(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
