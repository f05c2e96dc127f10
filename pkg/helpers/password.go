package helpers

import "golang.org/x/crypto/bcrypt"

// bcrypt cost for stored credentials. Raising this invalidates nothing:
// existing hashes keep the cost they were created with.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash to store for a plain-text password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored hash.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
