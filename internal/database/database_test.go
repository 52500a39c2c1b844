package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingRequestIndexCoversInterestlessRequests(t *testing.T) {
	// Postgres unique indexes treat NULLs as distinct, so the index has to
	// coalesce interest_id or two pending requests with no interest would
	// both insert for the same sender/receiver pair.
	assert.Contains(t, pendingRequestIndex, "COALESCE(interest_id, 0)")
	assert.Contains(t, pendingRequestIndex, "UNIQUE INDEX")
	assert.Contains(t, pendingRequestIndex, "WHERE status = 'pending'")
}
