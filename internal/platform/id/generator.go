package id

import (
	"crypto/rand"
	"encoding/hex"

	crerr "github.com/cockroachdb/errors"
)

const (
	defaultSize = 16
	maxLength   = 128
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator emits prefix followed by size random bytes in hex.
type RandomGenerator struct {
	prefix string
	size   int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: defaultSize}
}

// NewPrefixedGenerator is used for request IDs, e.g. prefix "req_".
func NewPrefixedGenerator(prefix string, size int) *RandomGenerator {
	if size <= 0 {
		size = defaultSize
	}
	return &RandomGenerator{prefix: prefix, size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = defaultSize
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", crerr.Wrap(err, "read random bytes")
	}

	return g.prefix + hex.EncodeToString(buf), nil
}

// Valid reports whether an externally supplied ID is safe to echo and log:
// 1 to 128 characters of [A-Za-z0-9._:-].
func Valid(value string) bool {
	if value == "" || len(value) > maxLength {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == ':', c == '-':
		default:
			return false
		}
	}
	return true
}
