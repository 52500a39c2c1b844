// Package relation reconciles directed connection requests into canonical
// undirected connections.
//
// The functions here decide state transitions over entities the caller has
// already loaded; they perform no I/O. The handler is expected to apply the
// resulting mutations inside one transaction so a response is all-or-nothing.
package relation

import (
	"fmt"

	"github.com/thechaitanyaanand/Minsoto/internal/apperr"
	"github.com/thechaitanyaanand/Minsoto/internal/models"
)

// Action is the receiver's answer to a pending request.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
)

// ParseAction validates a wire action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAccept, ActionDecline:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// CanonicalPair orders two user IDs so an unordered pair always maps to the
// same stored edge: (A,B) and (B,A) resolve identically.
func CanonicalPair(a, b uint) (lo, hi uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// CheckSend verifies that a new request from sender to receiver is allowed.
// pending is the existing pending request for the exact
// (sender, receiver, kind, interest) key, if any; existing is the accepted
// connection for the unordered pair with the same kind, if any. Both are
// looked up by the caller.
func CheckSend(senderID, receiverID uint, pending *models.ConnectionRequest, existing *models.Connection) error {
	if senderID == receiverID {
		return fmt.Errorf("%w: cannot send a request to yourself", apperr.ErrConflict)
	}
	if pending != nil {
		return fmt.Errorf("%w: request already sent", apperr.ErrConflict)
	}
	if existing != nil {
		return fmt.Errorf("%w: connection already exists", apperr.ErrConflict)
	}
	return nil
}

// Respond applies the receiver's answer to a pending request.
//
// The request must still be pending: accepted and declined are terminal, so
// a second respond call reports the request as not found. On decline the
// request is marked declined and no connection is returned. On accept the
// request is marked accepted and the canonical connection for the pair is
// returned: the existing one if the caller found it, otherwise a new edge in
// canonical order carrying the request's kind. Either way the caller adds
// the request's interest (if any) to the connection's interest set when
// persisting.
func Respond(req *models.ConnectionRequest, action Action, existing *models.Connection) (*models.Connection, error) {
	if req.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: request is not pending", apperr.ErrNotFound)
	}

	if action == ActionDecline {
		req.Status = models.StatusDeclined
		return nil, nil
	}

	req.Status = models.StatusAccepted
	if existing != nil {
		return existing, nil
	}

	lo, hi := CanonicalPair(req.SenderID, req.ReceiverID)
	return &models.Connection{
		UserAID: lo,
		UserBID: hi,
		Kind:    req.Kind,
	}, nil
}
