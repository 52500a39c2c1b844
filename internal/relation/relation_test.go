package relation

import (
	"errors"
	"testing"

	"github.com/thechaitanyaanand/Minsoto/internal/apperr"
	"github.com/thechaitanyaanand/Minsoto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPair(t *testing.T) {
	lo, hi := CanonicalPair(2, 7)
	assert.Equal(t, uint(2), lo)
	assert.Equal(t, uint(7), hi)

	lo, hi = CanonicalPair(7, 2)
	assert.Equal(t, uint(2), lo)
	assert.Equal(t, uint(7), hi)
}

func TestParseAction(t *testing.T) {
	action, err := ParseAction("accept")
	require.NoError(t, err)
	assert.Equal(t, ActionAccept, action)

	action, err = ParseAction("decline")
	require.NoError(t, err)
	assert.Equal(t, ActionDecline, action)

	_, err = ParseAction("maybe")
	assert.Error(t, err)
}

func TestCheckSend(t *testing.T) {
	t.Run("self request", func(t *testing.T) {
		err := CheckSend(3, 3, nil, nil)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})

	t.Run("duplicate pending", func(t *testing.T) {
		pending := &models.ConnectionRequest{SenderID: 1, ReceiverID: 2, Status: models.StatusPending}
		err := CheckSend(1, 2, pending, nil)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})

	t.Run("existing connection", func(t *testing.T) {
		existing := &models.Connection{UserAID: 1, UserBID: 2, Kind: models.KindConnection}
		err := CheckSend(1, 2, nil, existing)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})

	t.Run("clear to send", func(t *testing.T) {
		assert.NoError(t, CheckSend(1, 2, nil, nil))
	})
}

func TestRespondDecline(t *testing.T) {
	req := models.ConnectionRequest{SenderID: 1, ReceiverID: 2, Kind: models.KindFriend, Status: models.StatusPending}

	conn, err := Respond(&req, ActionDecline, nil)
	require.NoError(t, err)
	assert.Nil(t, conn, "declining never materializes a connection")
	assert.Equal(t, models.StatusDeclined, req.Status)

	// Declined is terminal.
	_, err = Respond(&req, ActionAccept, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, models.StatusDeclined, req.Status)
}

func TestRespondAcceptCreatesCanonicalEdge(t *testing.T) {
	req := models.ConnectionRequest{SenderID: 9, ReceiverID: 4, Kind: models.KindConnection, Status: models.StatusPending}

	conn, err := Respond(&req, ActionAccept, nil)
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, models.StatusAccepted, req.Status)
	assert.Equal(t, uint(4), conn.UserAID, "lower user ID is always stored first")
	assert.Equal(t, uint(9), conn.UserBID)
	assert.Equal(t, models.KindConnection, conn.Kind)
}

func TestRespondAcceptReusesExistingEdge(t *testing.T) {
	// A→B was accepted earlier and produced the canonical (4, 9) edge.
	existing := &models.Connection{UserAID: 4, UserBID: 9, Kind: models.KindConnection}
	existing.ID = 51

	// A later B→A request for the same kind resolves to the same edge.
	req := models.ConnectionRequest{SenderID: 4, ReceiverID: 9, Kind: models.KindConnection, Status: models.StatusPending}
	conn, err := Respond(&req, ActionAccept, existing)
	require.NoError(t, err)
	assert.Same(t, existing, conn, "no second edge for the same unordered pair")
	assert.Equal(t, models.StatusAccepted, req.Status)
}

func TestRespondNonPending(t *testing.T) {
	req := models.ConnectionRequest{SenderID: 1, ReceiverID: 2, Status: models.StatusAccepted}

	_, err := Respond(&req, ActionDecline, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, models.StatusAccepted, req.Status, "terminal status is never rewritten")
}
