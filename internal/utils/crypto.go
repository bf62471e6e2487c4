package utils

import (
	"crypto/rand"
	"encoding/base64"
)

const secureCodeBytes = 24

// GenerateSecureCode returns an opaque URL-safe token. Used for QR
// code identifiers; carries no embedded information.
func GenerateSecureCode() (string, error) {
	b := make([]byte, secureCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func MustGenerateSecureCode() string {
	code, err := GenerateSecureCode()
	if err != nil {
		panic("failed to generate secure code: " + err.Error())
	}
	return code
}
