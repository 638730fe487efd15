// Package crypto implements server-side password hashing and verification.
package crypto

import (
	"errors"

	"github.com/fiscalfit/server/internal/errs"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is a conservative work factor; raising it slows every login.
const bcryptCost = 10

// HashPassword returns the bcrypt hash of password. The salt is generated by
// bcrypt and embedded in the returned hash.
func HashPassword(password string) ([]byte, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errs.ErrPasswordTooLong
		}
		return nil, err
	}
	return h, nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
