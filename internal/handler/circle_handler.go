package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/database"
	"github.com/thechaitanyaanand/Minsoto/internal/hub"
	"github.com/thechaitanyaanand/Minsoto/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type CircleInput struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	CircleType       string `json:"circle_type" binding:"required,oneof=project habit learning accountability social"`
	IsPrivate        bool   `json:"is_private"`
	MaxMembers       int    `json:"max_members"`
	AllowPublicPosts *bool  `json:"allow_public_posts"`
	RequireApproval  *bool  `json:"require_approval"`
	InterestIDs      []uint `json:"interest_ids"`
}

type CircleResponse struct {
	ID               uint               `json:"id"`
	CreatedAt        time.Time          `json:"created_at"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	CircleType       models.CircleType  `json:"circle_type"`
	Creator          PublicUserResponse `json:"creator"`
	IsPrivate        bool               `json:"is_private"`
	MaxMembers       int                `json:"max_members"`
	AllowPublicPosts bool               `json:"allow_public_posts"`
	RequireApproval  bool               `json:"require_approval"`
	MemberCount      int                `json:"member_count"`
	Interests        []InterestResponse `json:"interests"`
}

func newCircleResponse(circle models.Circle) CircleResponse {
	interests := make([]InterestResponse, 0, len(circle.Interests))
	for _, interest := range circle.Interests {
		if interest != nil {
			interests = append(interests, newInterestResponse(*interest))
		}
	}

	return CircleResponse{
		ID:               circle.ID,
		CreatedAt:        circle.CreatedAt,
		Name:             circle.Name,
		Description:      circle.Description,
		CircleType:       circle.CircleType,
		Creator:          buildPublicUserResponse(circle.Creator),
		IsPrivate:        circle.IsPrivate,
		MaxMembers:       circle.MaxMembers,
		AllowPublicPosts: circle.AllowPublicPosts,
		RequireApproval:  circle.RequireApproval,
		MemberCount:      len(circle.Members),
		Interests:        interests,
	}
}

// endregion

func circleMembership(circleID, userID uint) (*models.CircleMembership, error) {
	var membership models.CircleMembership
	err := database.DB.Where("circle_id = ? AND user_id = ? AND is_active = ?", circleID, userID, true).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateCircle godoc
// @Summary      Create a circle
// @Description  Creates a new circle with the creator as its first member.
// @Tags         circles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CircleInput true "Circle Info"
// @Success      201  {object}  CircleResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /circles [post]
func CreateCircle(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CircleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var interests []*models.Interest
	if len(input.InterestIDs) > 0 {
		database.DB.Find(&interests, input.InterestIDs)
	}

	maxMembers := input.MaxMembers
	if maxMembers < 1 {
		maxMembers = 10
	}

	circle := models.Circle{
		Name:             input.Name,
		Description:      input.Description,
		CircleType:       models.CircleType(input.CircleType),
		CreatorID:        viewerID.(uint),
		IsPrivate:        input.IsPrivate,
		MaxMembers:       maxMembers,
		AllowPublicPosts: input.AllowPublicPosts == nil || *input.AllowPublicPosts,
		RequireApproval:  input.RequireApproval == nil || *input.RequireApproval,
		Interests:        interests,
	}

	// Circle and creator membership are created together.
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&circle).Error; err != nil {
			return err
		}
		return tx.Create(&models.CircleMembership{
			UserID:   viewerID.(uint),
			CircleID: circle.ID,
			Role:     models.RoleCreator,
			IsActive: true,
		}).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create circle"})
		return
	}

	database.DB.Preload("Creator").Preload("Interests").Preload("Members").First(&circle, circle.ID)
	c.JSON(http.StatusCreated, newCircleResponse(circle))
}

// GetCircles godoc
// @Summary      Browse circles
// @Description  Lists public circles plus private ones the viewer belongs to, paginated.
// @Tags         circles
// @Produce      json
// @Security     BearerAuth
// @Param        type  query string false "Filter by circle type"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[CircleResponse]
// @Router       /circles [get]
func GetCircles(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	query := database.DB.Model(&models.Circle{}).
		Preload("Creator").Preload("Interests").Preload("Members").
		Where("is_private = ? OR id IN (?)", false,
			database.DB.Model(&models.CircleMembership{}).Select("circle_id").
				Where("user_id = ? AND is_active = ?", viewerID, true))

	if circleType := c.Query("type"); circleType != "" {
		query = query.Where("circle_type = ?", circleType)
	}

	paginated, err := Paginate[models.Circle](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch circles"})
		return
	}

	response := make([]CircleResponse, 0, len(paginated.Data))
	for _, circle := range paginated.Data {
		response = append(response, newCircleResponse(circle))
	}
	c.JSON(http.StatusOK, PaginatedResponse[CircleResponse]{Data: response, Meta: paginated.Meta})
}

// GetMyCircles godoc
// @Summary      List my circles
// @Description  Lists the circles the viewer is an active member of.
// @Tags         circles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  CircleResponse
// @Router       /circles/my [get]
func GetMyCircles(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var circles []models.Circle
	err := database.DB.Preload("Creator").Preload("Interests").Preload("Members").
		Where("id IN (?)",
			database.DB.Model(&models.CircleMembership{}).Select("circle_id").
				Where("user_id = ? AND is_active = ?", viewerID, true)).
		Find(&circles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch circles"})
		return
	}

	response := make([]CircleResponse, 0, len(circles))
	for _, circle := range circles {
		response = append(response, newCircleResponse(circle))
	}
	c.JSON(http.StatusOK, response)
}

// GetCircleByID godoc
// @Summary      Get a circle
// @Description  Retrieves a circle's details. Private circles are only visible to members.
// @Tags         circles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Circle ID"
// @Success      200  {object}  CircleResponse
// @Failure      404  {object}  ErrorResponse "Circle not found"
// @Router       /circles/{id} [get]
func GetCircleByID(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	circleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid circle ID"})
		return
	}

	var circle models.Circle
	if err := database.DB.Preload("Creator").Preload("Interests").Preload("Members").
		First(&circle, circleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Circle not found"})
		return
	}

	if circle.IsPrivate {
		membership, err := circleMembership(circle.ID, viewerID.(uint))
		if err != nil || membership == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Circle not found"})
			return
		}
	}

	c.JSON(http.StatusOK, newCircleResponse(circle))
}

// JoinCircle godoc
// @Summary      Join a circle
// @Description  Joins a public circle if there is room.
// @Tags         circles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Circle ID"
// @Success      200  {object}  map[string]string "{"message": "Joined circle"}"
// @Failure      403  {object}  ErrorResponse "Circle is private"
// @Failure      404  {object}  ErrorResponse "Circle not found"
// @Failure      409  {object}  ErrorResponse "Already a member or circle is full"
// @Router       /circles/{id}/join [post]
func JoinCircle(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	circleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid circle ID"})
		return
	}

	var circle models.Circle
	if err := database.DB.Preload("Members").First(&circle, circleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Circle not found"})
		return
	}

	if circle.IsPrivate {
		c.JSON(http.StatusForbidden, gin.H{"error": "Circle is private"})
		return
	}

	membership, err := circleMembership(circle.ID, viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}
	if membership != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this circle"})
		return
	}

	if len(circle.Members) >= circle.MaxMembers {
		c.JSON(http.StatusConflict, gin.H{"error": "Circle is full"})
		return
	}

	newMembership := models.CircleMembership{
		UserID:   viewerID.(uint),
		CircleID: circle.ID,
		Role:     models.RoleMember,
		IsActive: true,
	}
	if err := database.DB.Create(&newMembership).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this circle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined circle"})
}

// LeaveCircle godoc
// @Summary      Leave a circle
// @Description  Leaves a circle. The creator cannot leave their own circle.
// @Tags         circles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Circle ID"
// @Success      200  {object}  map[string]string "{"message": "Left circle"}"
// @Failure      400  {object}  ErrorResponse "Creator cannot leave"
// @Failure      404  {object}  ErrorResponse "Not a member"
// @Router       /circles/{id}/leave [post]
func LeaveCircle(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	circleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid circle ID"})
		return
	}

	membership, err := circleMembership(uint(circleID), viewerID.(uint))
	if err != nil || membership == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this circle"})
		return
	}

	if membership.Role == models.RoleCreator {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Creator cannot leave their own circle"})
		return
	}

	if err := database.DB.Delete(&models.CircleMembership{}, "circle_id = ? AND user_id = ?", circleID, viewerID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave circle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left circle"})
}

// KickMember godoc
// @Summary      Kick a member from a circle
// @Description  Removes a member. Only the creator or an admin can do this, and the creator cannot be kicked.
// @Tags         circles
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int true "Circle ID"
// @Param        userID  path int true "User ID of member to kick"
// @Success      200  {object}  map[string]string "{"message": "Member removed"}"
// @Failure      403  {object}  ErrorResponse "Not a circle admin"
// @Failure      404  {object}  ErrorResponse "Circle or member not found"
// @Router       /circles/{id}/members/{userID} [delete]
func KickMember(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	circleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid circle ID"})
		return
	}
	memberID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	viewerMembership, err := circleMembership(uint(circleID), viewerID.(uint))
	if err != nil || viewerMembership == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Circle not found"})
		return
	}
	if viewerMembership.Role != models.RoleCreator && viewerMembership.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator or an admin can remove members"})
		return
	}

	targetMembership, err := circleMembership(uint(circleID), uint(memberID))
	if err != nil || targetMembership == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found in this circle"})
		return
	}
	if targetMembership.Role == models.RoleCreator {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Creator cannot be removed"})
		return
	}

	if err := database.DB.Delete(&models.CircleMembership{}, "circle_id = ? AND user_id = ?", circleID, memberID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// CircleEvents godoc
// @Summary      Stream circle events
// @Description  Subscribes to server-sent events for a circle (new posts, membership changes).
// @Tags         circles
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id path int true "Circle ID"
// @Failure      404  {object}  ErrorResponse "Not a member"
// @Router       /circles/{id}/events [get]
func CircleEvents(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	circleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid circle ID"})
		return
	}

	membership, err := circleMembership(uint(circleID), viewerID.(uint))
	if err != nil || membership == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this circle"})
		return
	}

	client := make(hub.Client, 8)
	hub.GlobalHub.Subscribe(uint(circleID), client)
	defer hub.GlobalHub.Unsubscribe(uint(circleID), client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
