package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// IsValidEmail reports whether the address passes format validation.
// Callers drop invalid addresses silently; an unparseable email in source
// data is not worth failing an import over.
func IsValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

func HashPassword(s string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
}

// ParseBoolAttr implements the document's textual true/false convention.
// Anything other than a case-insensitive "true" is false.
func ParseBoolAttr(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
