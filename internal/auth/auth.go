// Package auth verifies the admin password.
package auth

import "golang.org/x/crypto/bcrypt"

// Verifier checks a submitted secret.
type Verifier interface {
	Verify(secret string) bool
}

// Bcrypt verifies secrets against a bcrypt hash. The zero value rejects
// everything.
type Bcrypt struct {
	hash []byte
}

// NewBcrypt returns a verifier for an existing bcrypt hash.
func NewBcrypt(hash string) *Bcrypt {
	if hash == "" {
		return &Bcrypt{}
	}
	return &Bcrypt{hash: []byte(hash)}
}

// FromPassword hashes a plaintext password and returns a verifier for it.
func FromPassword(password string) (*Bcrypt, error) {
	if password == "" {
		return &Bcrypt{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Bcrypt{hash: hash}, nil
}

// Verify reports whether secret matches. An unset hash never matches.
func (b *Bcrypt) Verify(secret string) bool {
	if len(b.hash) == 0 || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(b.hash, []byte(secret)) == nil
}
