package auth

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login names an unknown user, so
// the failure path costs one bcrypt comparison either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("carehub-no-such-account"), bcrypt.DefaultCost)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BurnComparison performs a throwaway bcrypt comparison. Called on the
// unknown-user path so response timing does not reveal whether a
// username exists.
func BurnComparison(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}

// GenerateRandomPassword returns a URL-safe random password handed to
// newly created accounts and password resets.
func GenerateRandomPassword() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
