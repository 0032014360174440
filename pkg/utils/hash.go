package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades login latency for brute-force resistance; 12 keeps a
// hash under ~300ms on commodity hardware.
const bcryptCost = 12

// HashPassword returns the bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
