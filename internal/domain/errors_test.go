package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agrilink-web/internal/domain"
)

func TestIdentityError_UnwrapAlSentinel(t *testing.T) {
	err := fmt.Errorf("sign in: %w", &domain.IdentityError{Code: "EMAIL_EXISTS", Err: domain.ErrEmailAlreadyInUse})

	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyInUse))
	assert.False(t, errors.Is(err, domain.ErrInvalidCredential))

	var idErr *domain.IdentityError
	assert.True(t, errors.As(err, &idErr))
	assert.Equal(t, "EMAIL_EXISTS", idErr.Code)
	assert.Contains(t, err.Error(), "EMAIL_EXISTS")
}

func TestIdentityError_SinCausa(t *testing.T) {
	err := &domain.IdentityError{Code: "UNKNOWN"}
	assert.Equal(t, "identity: UNKNOWN", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
