package service

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost keeps the configured cost inside the range bcrypt accepts
func bcryptCost(configured int64) int {
	cost := int(configured)
	if cost < bcrypt.MinCost {
		return bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string, cost int64) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost(cost))
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
