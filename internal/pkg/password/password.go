package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const cost = 12

// ErrTooLong is returned when the password exceeds bcrypt's 72-byte input limit
var ErrTooLong = errors.New("password exceeds 72 bytes")

// Hash hashes a password with bcrypt
func Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Verify reports whether the password matches the hash
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
