package models

import "gorm.io/gorm"

// RequestKind distinguishes a lightweight connection from a full friendship.
type RequestKind string

const (
	KindConnection RequestKind = "connection"
	KindFriend     RequestKind = "friend"
)

// RequestStatus defines the state of a connection request.
type RequestStatus string

const (
	// StatusPending means a request has been sent but not yet answered.
	StatusPending RequestStatus = "pending"

	// StatusAccepted means the receiver accepted; terminal.
	StatusAccepted RequestStatus = "accepted"

	// StatusDeclined means the receiver declined; terminal.
	StatusDeclined RequestStatus = "declined"
)

// ConnectionRequest is a directed proposal from a sender to a receiver,
// optionally scoped to a shared interest. A partial unique index over
// pending rows (created in database.Connect, since it coalesces the nullable
// interest_id — NULLs would otherwise compare as distinct) lets the database
// catch a duplicate proposal raced past the handler check, while answered
// requests stay in history.
type ConnectionRequest struct {
	gorm.Model
	SenderID   uint        `gorm:"not null;index"`
	ReceiverID uint        `gorm:"not null;index"`
	Kind       RequestKind `gorm:"type:varchar(20);not null"`
	InterestID *uint
	Status     RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Message    string        `gorm:"type:text"`

	Sender   User      `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User      `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Interest *Interest `gorm:"foreignKey:InterestID"`
}

// Connection is the undirected edge materialized when a request is accepted.
// UserAID is always the smaller of the two user IDs so the pair maps to a
// single row regardless of who sent the request.
type Connection struct {
	gorm.Model
	UserAID uint        `gorm:"not null;uniqueIndex:idx_connection_pair"`
	UserBID uint        `gorm:"not null;uniqueIndex:idx_connection_pair"`
	Kind    RequestKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_connection_pair"`

	UserA     User        `gorm:"foreignKey:UserAID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserB     User        `gorm:"foreignKey:UserBID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Interests []*Interest `gorm:"many2many:connection_interests;"`
}

// OtherUserID returns the member of the pair that is not the given user.
func (c *Connection) OtherUserID(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}
