package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost of 8 for performance on low-CPU nodes
// Cost 8 = ~25ms, Cost 10 = ~100ms per hash
const bcryptCost = 8

// HashPIN generates a bcrypt hash of the access PIN
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPIN checks a submitted PIN against the stored value. Fresh
// databases seed the PIN as plain text; once the operator changes it the
// stored value is a bcrypt hash.
func VerifyPIN(stored, pin string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
	}
	return stored != "" && stored == pin
}
