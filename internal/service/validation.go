package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/contacts-api/internal/domain"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// validateName rejects empty and whitespace-only names.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrNameRequired
	}
	return nil
}

// validateEmail accepts addresses of the form local@domain.tld.
func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return domain.ErrInvalidEmail
	}
	return nil
}
