package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTxStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, txStatus(gorm.ErrDuplicatedKey),
		"a unique violation means a concurrent writer won the race")
	assert.Equal(t, http.StatusConflict, txStatus(fmt.Errorf("create connection: %w", gorm.ErrDuplicatedKey)))

	assert.Equal(t, http.StatusInternalServerError, txStatus(errors.New("connection reset by peer")),
		"only duplicate keys are conflicts; other write failures are server errors")
	assert.Equal(t, http.StatusInternalServerError, txStatus(gorm.ErrInvalidTransaction))
}
