package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for HR account credentials.
const PasswordCost = 12

// MaxPasswordBytes is the longest input bcrypt hashes without error.
const MaxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(b), err
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
