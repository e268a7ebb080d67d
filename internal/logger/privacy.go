package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

var hashSalt = "moentix-default-salt"

// InitHashSalt reads LOG_HASH_SALT; the default salt is only fit for development.
func InitHashSalt() {
	if salt := os.Getenv("LOG_HASH_SALT"); salt != "" {
		hashSalt = salt
	}
}

// HashUserID creates a privacy-preserving hash of a user ID so log lines can
// be correlated without exposing account identifiers.
func HashUserID(userID int64) string {
	data := fmt.Sprintf("%d:%s", userID, hashSalt)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:8]
}

// RedactEmail keeps the domain of an address and masks the local part.
func RedactEmail(email string) string {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return "***" + email[i:]
		}
	}
	return "<redacted>"
}
