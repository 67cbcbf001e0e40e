package util

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of the plaintext. The hash embeds its own
// salt and cost, so verification needs nothing beyond the stored string.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash. Any
// failure, including a malformed hash, reads as a mismatch.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
