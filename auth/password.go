package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes with bcrypt at cost. Use bcrypt.DefaultCost outside tests.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
