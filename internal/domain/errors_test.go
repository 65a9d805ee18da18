package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrNameRequired, "O nome é obrigatório."},
		{ErrInvalidEmail, "Formato de e-mail inválido."},
		{ErrInvalidPhoneNumber, "Número de telefone informado incorretamente, Modelo esperado: (dd) 99999-9999."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrValidation))
		})
	}
}

func TestValidationError_As(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("insert contact: %w", ErrInvalidEmail)

	var vErr *ValidationError
	assert.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, KindInvalidEmail, vErr.Kind)
	assert.Equal(t, "email", vErr.Field)
	assert.False(t, errors.Is(wrapped, ErrNameRequired))
}

func TestMessage_UnknownKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrValidation.Error(), Message("unknown"))
}
