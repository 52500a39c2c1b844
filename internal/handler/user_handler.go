package handler

import (
	"net/http"
	"strconv"

	"github.com/thechaitanyaanand/Minsoto/internal/database"
	"github.com/thechaitanyaanand/Minsoto/internal/models"
	"github.com/thechaitanyaanand/Minsoto/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UsernameInput defines the structure for claiming a username.
type UsernameInput struct {
	Username string `json:"username" binding:"required" example:"newname"`
}

// UpdateProfileInput defines the editable profile fields.
type UpdateProfileInput struct {
	Bio               *string `json:"bio"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	BannerImageURL    *string `json:"banner_image_url"`
	ProfileTheme      *string `json:"profile_theme"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID                uint   `json:"id" example:"1"`
	Username          string `json:"username" example:"testuser"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
	BannerImageURL    string `json:"banner_image_url"`
	ProfileTheme      string `json:"profile_theme"`
	ConnectionsCount  int64  `json:"connections_count"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID                uint   `json:"id" example:"1"`
	Username          string `json:"username" example:"testuser"`
	Email             string `json:"email" example:"test@example.com"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
	BannerImageURL    string `json:"banner_image_url"`
	ProfileTheme      string `json:"profile_theme"`
	ConnectionsCount  int64  `json:"connections_count"`
	PendingIncoming   int64  `json:"pending_incoming"`
	PendingOutgoing   int64  `json:"pending_outgoing"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username/email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// SetUsername godoc
// @Summary      Set the current user's username
// @Description  Claims or replaces the authenticated user's unique username.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UsernameInput true "New Username"
// @Success      200  {object}  map[string]string "{"message": "Username has been set"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username already taken"
// @Router       /auth/username [put]
func SetUsername(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input UsernameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := database.DB.Where("LOWER(username) = LOWER(?) AND id <> ?", input.Username, viewerID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This username is already taken"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", viewerID).Update("username", input.Username).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set username"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Username has been set"})
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by username with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for username"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	searchQuery := c.Query("q")
	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.User{}).Where("id <> ?", viewerID)
	if searchQuery != "" {
		query = query.Where("username ILIKE ?", "%"+searchQuery+"%")
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	if err := query.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	userResponses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, buildPublicUserResponse(user))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(userResponses, totalItems, page, limit))
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user by their ID.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// If target is the same as viewer, serve the private profile
	if viewerID.(uint) == uint(targetUserID) {
		GetMe(c)
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildPublicUserResponse(targetUser))
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Updates bio, profile picture, banner image, and theme for the authenticated user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile fields to update"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [put]
func UpdateMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.ProfilePictureURL != nil {
		user.ProfilePictureURL = *input.ProfilePictureURL
	}
	if input.BannerImageURL != nil {
		user.BannerImageURL = *input.BannerImageURL
	}
	if input.ProfileTheme != nil {
		user.ProfileTheme = *input.ProfileTheme
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, buildPrivateUserResponse(user))
}

// endregion

// region --- Helpers ---

func buildPublicUserResponse(targetUser models.User) PublicUserResponse {
	var connectionsCount int64
	database.DB.Model(&models.Connection{}).
		Where("user_a_id = ? OR user_b_id = ?", targetUser.ID, targetUser.ID).
		Count(&connectionsCount)

	return PublicUserResponse{
		ID:                targetUser.ID,
		Username:          targetUser.Username,
		Bio:               targetUser.Bio,
		ProfilePictureURL: targetUser.ProfilePictureURL,
		BannerImageURL:    targetUser.BannerImageURL,
		ProfileTheme:      targetUser.ProfileTheme,
		ConnectionsCount:  connectionsCount,
	}
}

func buildPrivateUserResponse(user models.User) PrivateUserResponse {
	var connectionsCount, pendingIncoming, pendingOutgoing int64
	database.DB.Model(&models.Connection{}).
		Where("user_a_id = ? OR user_b_id = ?", user.ID, user.ID).
		Count(&connectionsCount)
	database.DB.Model(&models.ConnectionRequest{}).
		Where("receiver_id = ? AND status = ?", user.ID, models.StatusPending).
		Count(&pendingIncoming)
	database.DB.Model(&models.ConnectionRequest{}).
		Where("sender_id = ? AND status = ?", user.ID, models.StatusPending).
		Count(&pendingOutgoing)

	return PrivateUserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		BannerImageURL:    user.BannerImageURL,
		ProfileTheme:      user.ProfileTheme,
		ConnectionsCount:  connectionsCount,
		PendingIncoming:   pendingIncoming,
		PendingOutgoing:   pendingOutgoing,
	}
}

// endregion
