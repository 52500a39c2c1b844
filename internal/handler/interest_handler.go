package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/database"
	"github.com/thechaitanyaanand/Minsoto/internal/models"

	"github.com/gin-gonic/gin"
)

type InterestInput struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type InterestResponse struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

func newInterestResponse(interest models.Interest) InterestResponse {
	return InterestResponse{
		ID:          interest.ID,
		CreatedAt:   interest.CreatedAt,
		UpdatedAt:   interest.UpdatedAt,
		Name:        interest.Name,
		Category:    interest.Category,
		Description: interest.Description,
		Icon:        interest.Icon,
	}
}

// newInterestListResponse never returns nil, so an empty catalog still
// serializes as a JSON array.
func newInterestListResponse(interests []models.Interest) []InterestResponse {
	response := make([]InterestResponse, 0, len(interests))
	for _, interest := range interests {
		response = append(response, newInterestResponse(interest))
	}
	return response
}

// GetInterests godoc
// @Summary      Get all interests
// @Description  Retrieves the list of interests, ordered by category then name.
// @Tags         interests
// @Produce      json
// @Success      200  {array}   InterestResponse
// @Router       /interests [get]
func GetInterests(c *gin.Context) {
	var interests []models.Interest
	database.DB.Order("category, name").Find(&interests)

	c.JSON(http.StatusOK, newInterestListResponse(interests))
}

// CreateInterest godoc
// @Summary      Create a new interest
// @Description  Creates a new interest topic.
// @Tags         admin-interests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body InterestInput true "Interest Info"
// @Success      201  {object}  InterestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Interest already exists"
// @Router       /admin/interests [post]
func CreateInterest(c *gin.Context) {
	var input InterestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interest := models.Interest{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Icon:        input.Icon,
	}
	if err := database.DB.Create(&interest).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Interest already exists or another error occurred"})
		return
	}

	c.JSON(http.StatusCreated, newInterestResponse(interest))
}

// UpdateInterest godoc
// @Summary      Update an interest
// @Description  Updates an existing interest's fields.
// @Tags         admin-interests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Interest ID"
// @Param        input body      InterestInput  true  "New Interest Info"
// @Success      200  {object}  InterestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Interest not found"
// @Router       /admin/interests/{id} [put]
func UpdateInterest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input InterestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var interest models.Interest
	if err := database.DB.First(&interest, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interest not found"})
		return
	}

	interest.Name = input.Name
	interest.Category = input.Category
	interest.Description = input.Description
	interest.Icon = input.Icon
	database.DB.Save(&interest)

	c.JSON(http.StatusOK, newInterestResponse(interest))
}

// DeleteInterest godoc
// @Summary      Delete an interest
// @Description  Deletes an existing interest.
// @Tags         admin-interests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Interest ID"
// @Success      200  {object}  map[string]string "{"message": "Interest deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Interest not found"
// @Router       /admin/interests/{id} [delete]
func DeleteInterest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	result := database.DB.Delete(&models.Interest{}, id)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interest not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interest deleted"})
}
