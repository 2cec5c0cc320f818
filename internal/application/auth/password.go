package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword devuelve el hash bcrypt del secreto.
func HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara el secreto con el hash bcrypt almacenado.
func CheckPassword(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// burnCompare iguala el costo de un login con código de empleado inexistente.
func burnCompare(secret string) {
	dummyOnce.Do(func() {
		dummyHash, _ = HashPassword("robolab-dummy")
	})
	_ = CheckPassword(dummyHash, secret)
}
