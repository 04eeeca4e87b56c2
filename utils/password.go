package utils

import (
	"math/rand"
	"time"
)

// GenerateRandomPassword creates a 10 character replacement password.
func GenerateRandomPassword() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	password := make([]byte, 10)
	for i := range password {
		password[i] = charset[rng.Intn(len(charset))]
	}
	return string(password)
}
