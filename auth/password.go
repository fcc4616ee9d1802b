package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost factor used when the accounts were first
// provisioned; changing it would invalidate no hashes but slow new ones.
const bcryptCost = 10

// HashPassword produces a bcrypt hash of the plaintext password. The
// plaintext must never be stored or logged.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
