package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(ErrNotFound))
	assert.Equal(t, http.StatusForbidden, Status(ErrForbidden))
	assert.Equal(t, http.StatusConflict, Status(ErrConflict))
	assert.Equal(t, http.StatusBadRequest, Status(ErrInvalidDate))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestStatusUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: request already sent", ErrConflict)
	assert.Equal(t, http.StatusConflict, Status(wrapped))
}
