package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost of 8 keeps logins fast on the small office server.
// Cost 8 = ~25ms, Cost 10 = ~100ms, Cost 12 = ~400ms per hash.
const bcryptCost = 8

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if the provided password matches the hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
