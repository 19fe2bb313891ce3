package pkg

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength applies to admin accounts, the only password holders.
const MinPasswordLength = 8

const passwordHashCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
