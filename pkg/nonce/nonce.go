package nonce

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const (
	// MinSize is the smallest accepted entropy size in bytes.
	MinSize = 16
	// DefaultSize is the entropy size used by NewBuilder.
	DefaultSize = 32
)

// Pair holds a raw nonce and its SHA-256 hex digest.
type Pair struct {
	Raw    string
	Hashed string
}

// Verify checks that Hashed == SHA256(Raw).
func (p Pair) Verify() error {
	if p.Raw == "" {
		return ErrEmpty
	}
	if !Matches(p.Raw, p.Hashed) {
		return ErrMismatch
	}
	return nil
}

// Hash returns the lowercase hex SHA-256 digest of raw.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether hashed is the digest of raw, in constant time.
func Matches(raw, hashed string) bool {
	return subtle.ConstantTimeCompare([]byte(Hash(raw)), []byte(hashed)) == 1
}

// Builder generates nonce pairs.
type Builder struct {
	random io.Reader
	size   int
}

// Option configures a Builder.
type Option func(*Builder)

// WithSize sets the entropy size in bytes. Values below MinSize are raised to MinSize.
func WithSize(n int) Option {
	return func(b *Builder) {
		b.size = max(n, MinSize)
	}
}

// WithRandom replaces the entropy source. Tests use it to simulate failures.
func WithRandom(r io.Reader) Option {
	return func(b *Builder) {
		b.random = r
	}
}

// NewBuilder creates a Builder reading from crypto/rand.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{random: rand.Reader, size: DefaultSize}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns a fresh nonce pair.
// The raw value is base64url without padding, so it is safe in URLs and form bodies.
func (b *Builder) Build() (Pair, error) {
	buf := make([]byte, b.size)
	if _, err := io.ReadFull(b.random, buf); err != nil {
		return Pair{}, errors.Join(ErrCrypto, fmt.Errorf("read entropy: %w", err))
	}

	raw := base64.RawURLEncoding.EncodeToString(buf)
	pair := Pair{Raw: raw, Hashed: Hash(raw)}
	if err := pair.Verify(); err != nil {
		return Pair{}, errors.Join(ErrCrypto, err)
	}
	return pair, nil
}
