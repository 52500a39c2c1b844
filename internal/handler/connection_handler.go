package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/apperr"
	"github.com/thechaitanyaanand/Minsoto/internal/database"
	"github.com/thechaitanyaanand/Minsoto/internal/models"
	"github.com/thechaitanyaanand/Minsoto/internal/relation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type SendRequestInput struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Kind       string `json:"kind"` // "connection" (default) or "friend"
	InterestID *uint  `json:"interest_id"`
	Message    string `json:"message"`
}

type RespondInput struct {
	Action string `json:"action" binding:"required"` // "accept" or "decline"
}

type RequestResponse struct {
	ID        uint                 `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Sender    PublicUserResponse   `json:"sender"`
	Receiver  PublicUserResponse   `json:"receiver"`
	Kind      models.RequestKind   `json:"kind"`
	Interest  *InterestResponse    `json:"interest,omitempty"`
	Status    models.RequestStatus `json:"status"`
	Message   string               `json:"message"`
}

type ConnectionResponse struct {
	ID        uint               `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Kind      models.RequestKind `json:"kind"`
	User      PublicUserResponse `json:"user"` // the other member of the pair
	Interests []InterestResponse `json:"interests"`
}

func newRequestResponse(req models.ConnectionRequest) RequestResponse {
	resp := RequestResponse{
		ID:        req.ID,
		CreatedAt: req.CreatedAt,
		Sender:    buildPublicUserResponse(req.Sender),
		Receiver:  buildPublicUserResponse(req.Receiver),
		Kind:      req.Kind,
		Status:    req.Status,
		Message:   req.Message,
	}
	if req.Interest != nil {
		interest := newInterestResponse(*req.Interest)
		resp.Interest = &interest
	}
	return resp
}

func newConnectionResponse(conn models.Connection, viewerID uint) ConnectionResponse {
	other := conn.UserA
	if conn.UserAID == viewerID {
		other = conn.UserB
	}

	interests := make([]InterestResponse, 0, len(conn.Interests))
	for _, interest := range conn.Interests {
		if interest != nil {
			interests = append(interests, newInterestResponse(*interest))
		}
	}

	return ConnectionResponse{
		ID:        conn.ID,
		CreatedAt: conn.CreatedAt,
		Kind:      conn.Kind,
		User:      buildPublicUserResponse(other),
		Interests: interests,
	}
}

// endregion

// txStatus maps a write error to an HTTP status. A unique-index violation
// means a concurrent writer got there first, which is a conflict; anything
// else is a server error.
func txStatus(err error) int {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// findConnection loads the accepted edge for an unordered user pair and kind,
// or returns nil if none exists.
func findConnection(tx *gorm.DB, userA, userB uint, kind models.RequestKind) (*models.Connection, error) {
	lo, hi := relation.CanonicalPair(userA, userB)

	var conn models.Connection
	err := tx.Where("user_a_id = ? AND user_b_id = ? AND kind = ?", lo, hi, kind).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// SendConnectionRequest godoc
// @Summary      Send a connection request
// @Description  Sends a connection or friend request to another user, optionally scoped to a shared interest.
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendRequestInput true "Request Info"
// @Success      201  {object}  RequestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Receiver or interest not found"
// @Failure      409  {object}  ErrorResponse "Duplicate request or existing connection"
// @Router       /connections/requests [post]
func SendConnectionRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := models.RequestKind(input.Kind)
	if kind == "" {
		kind = models.KindConnection
	}
	if kind != models.KindConnection && kind != models.KindFriend {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request kind"})
		return
	}

	var receiver models.User
	if err := database.DB.First(&receiver, input.ReceiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var interest *models.Interest
	if input.InterestID != nil {
		var found models.Interest
		if err := database.DB.First(&found, *input.InterestID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Interest not found"})
			return
		}
		interest = &found
	}

	// Look up the state the core needs to validate the send.
	var pending *models.ConnectionRequest
	var existingReq models.ConnectionRequest
	query := database.DB.Where(
		"sender_id = ? AND receiver_id = ? AND kind = ? AND status = ?",
		viewerID, input.ReceiverID, kind, models.StatusPending,
	)
	if input.InterestID != nil {
		query = query.Where("interest_id = ?", *input.InterestID)
	} else {
		query = query.Where("interest_id IS NULL")
	}
	if err := query.First(&existingReq).Error; err == nil {
		pending = &existingReq
	}

	existingConn, err := findConnection(database.DB, viewerID.(uint), input.ReceiverID, kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing connection"})
		return
	}

	if err := relation.CheckSend(viewerID.(uint), input.ReceiverID, pending, existingConn); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	request := models.ConnectionRequest{
		SenderID:   viewerID.(uint),
		ReceiverID: input.ReceiverID,
		Kind:       kind,
		InterestID: input.InterestID,
		Status:     models.StatusPending,
		Message:    input.Message,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		// The partial unique index catches a concurrent duplicate send here.
		if status := txStatus(err); status == http.StatusConflict {
			c.JSON(status, gin.H{"error": "Request already exists"})
		} else {
			c.JSON(status, gin.H{"error": "Failed to create request"})
		}
		return
	}

	request.Receiver = receiver
	request.Interest = interest
	database.DB.First(&request.Sender, request.SenderID)

	c.JSON(http.StatusCreated, newRequestResponse(request))
}

// ListConnectionRequests godoc
// @Summary      List connection requests
// @Description  Lists the viewer's connection requests filtered by direction and status.
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        direction query string false "incoming or outgoing (default incoming)"
// @Param        status    query string false "Filter by status (pending, accepted, declined)"
// @Success      200  {array}   RequestResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /connections/requests [get]
func ListConnectionRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	direction := c.DefaultQuery("direction", "incoming")
	statusFilter := c.Query("status")

	query := database.DB.Preload("Sender").Preload("Receiver").Preload("Interest")

	switch direction {
	case "incoming":
		query = query.Where("receiver_id = ?", viewerID)
	case "outgoing":
		query = query.Where("sender_id = ?", viewerID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be incoming or outgoing"})
		return
	}

	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var requests []models.ConnectionRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	response := make([]RequestResponse, 0, len(requests))
	for _, req := range requests {
		response = append(response, newRequestResponse(req))
	}
	c.JSON(http.StatusOK, response)
}

// RespondToRequest godoc
// @Summary      Respond to a connection request
// @Description  Accepts or declines a pending request addressed to the viewer. Accepting upserts the canonical connection for the pair.
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Request ID"
// @Param        input body RespondInput true "accept or decline"
// @Success      200  {object}  RequestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No pending request addressed to the viewer"
// @Router       /connections/requests/{id}/respond [post]
func RespondToRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := relation.ParseAction(input.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only pending requests addressed to the viewer are visible here;
	// anything else reads as not found.
	var request models.ConnectionRequest
	if err := database.DB.Where("id = ? AND receiver_id = ? AND status = ?", requestID, viewerID, models.StatusPending).
		First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending request not found"})
		return
	}

	existingConn, err := findConnection(database.DB, request.SenderID, request.ReceiverID, request.Kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing connection"})
		return
	}

	conn, err := relation.Respond(&request, action, existingConn)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	// Status change and connection upsert succeed or fail together.
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", request.Status).Error; err != nil {
			return err
		}
		if conn == nil {
			return nil
		}
		if conn.ID == 0 {
			if err := tx.Create(conn).Error; err != nil {
				return err
			}
		}
		if request.InterestID != nil {
			var interest models.Interest
			if err := tx.First(&interest, *request.InterestID).Error; err != nil {
				return err
			}
			if err := tx.Model(conn).Association("Interests").Append(&interest); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		// A racing reciprocal accept loses on the connection pair index.
		if status := txStatus(txErr); status == http.StatusConflict {
			c.JSON(status, gin.H{"error": "Connection already exists"})
		} else {
			c.JSON(status, gin.H{"error": "Failed to apply response"})
		}
		return
	}

	database.DB.Preload("Sender").Preload("Receiver").Preload("Interest").First(&request, request.ID)
	c.JSON(http.StatusOK, newRequestResponse(request))
}

// GetMyConnections godoc
// @Summary      List my connections
// @Description  Lists the viewer's connections with the other member of each pair resolved.
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        kind query string false "Filter by kind (connection, friend)"
// @Success      200  {array}  ConnectionResponse
// @Router       /connections [get]
func GetMyConnections(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	kindFilter := c.Query("kind")

	query := database.DB.Preload("UserA").Preload("UserB").Preload("Interests").
		Where("user_a_id = ? OR user_b_id = ?", viewerID, viewerID)
	if kindFilter != "" {
		query = query.Where("kind = ?", kindFilter)
	}

	var connections []models.Connection
	if err := query.Order("created_at DESC").Find(&connections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch connections"})
		return
	}

	response := make([]ConnectionResponse, 0, len(connections))
	for _, conn := range connections {
		response = append(response, newConnectionResponse(conn, viewerID.(uint)))
	}
	c.JSON(http.StatusOK, response)
}
