package handler

import (
	"encoding/json"
	"testing"

	"github.com/thechaitanyaanand/Minsoto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterestListResponse(t *testing.T) {
	interests := []models.Interest{
		{Name: "Chess", Category: "games"},
		{Name: "Running", Category: "fitness"},
	}

	response := newInterestListResponse(interests)
	require.Len(t, response, 2)
	assert.Equal(t, "Chess", response[0].Name)
	assert.Equal(t, "fitness", response[1].Category)
}

func TestNewInterestListResponseEmptySerializesAsArray(t *testing.T) {
	data, err := json.Marshal(newInterestListResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data), "an empty catalog must render as [] rather than null")
}
