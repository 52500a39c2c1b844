package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/apperr"
	"github.com/thechaitanyaanand/Minsoto/internal/database"
	"github.com/thechaitanyaanand/Minsoto/internal/models"
	"github.com/thechaitanyaanand/Minsoto/internal/streak"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type HabitInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	TargetFrequency int    `json:"target_frequency"`
	CircleID        *uint  `json:"circle_id"`
	IsPublic        bool   `json:"is_public"`
}

type CheckInInput struct {
	Date  string `json:"date"` // ISO YYYY-MM-DD; empty means today
	Notes string `json:"notes"`
}

type HabitResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	TargetFrequency int    `json:"target_frequency"`
	CircleID        *uint  `json:"circle_id,omitempty"`
	IsPublic        bool   `json:"is_public"`
	IsActive        bool   `json:"is_active"`
	CurrentStreak   int    `json:"current_streak"`
	BestStreak      int    `json:"best_streak"`
	LastCompleted   string `json:"last_completed,omitempty"`
}

type HabitEntryResponse struct {
	ID        uint   `json:"id"`
	HabitID   uint   `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

func newHabitResponse(habit models.Habit) HabitResponse {
	resp := HabitResponse{
		ID:              habit.ID,
		Name:            habit.Name,
		Description:     habit.Description,
		TargetFrequency: habit.TargetFrequency,
		CircleID:        habit.CircleID,
		IsPublic:        habit.IsPublic,
		IsActive:        habit.IsActive,
		CurrentStreak:   habit.CurrentStreak,
		BestStreak:      habit.BestStreak,
	}
	if habit.LastCompleted != nil {
		resp.LastCompleted = habit.LastCompleted.Format(streak.DateLayout)
	}
	return resp
}

func newHabitEntryResponse(entry models.HabitEntry) HabitEntryResponse {
	return HabitEntryResponse{
		ID:        entry.ID,
		HabitID:   entry.HabitID,
		Date:      entry.Date.Format(streak.DateLayout),
		Completed: entry.Completed,
		Notes:     entry.Notes,
	}
}

// endregion

// ownedHabit loads a habit and enforces that the viewer owns it. A habit
// owned by someone else reads as not found.
func ownedHabit(c *gin.Context) (*models.Habit, bool) {
	viewerID, _ := c.Get("userID")
	habitID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid habit ID"})
		return nil, false
	}

	var habit models.Habit
	if err := database.DB.Where("id = ? AND user_id = ?", habitID, viewerID).First(&habit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
		return nil, false
	}
	return &habit, true
}

// CreateHabit godoc
// @Summary      Create a habit
// @Description  Creates a new habit tracked by the authenticated user.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body HabitInput true "Habit Info"
// @Success      201  {object}  HabitResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Circle not found"
// @Router       /habits [post]
func CreateHabit(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input HabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.CircleID != nil {
		var circle models.Circle
		if err := database.DB.First(&circle, *input.CircleID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Circle not found"})
			return
		}
	}

	targetFrequency := input.TargetFrequency
	if targetFrequency < 1 {
		targetFrequency = 1
	}

	habit := models.Habit{
		UserID:          viewerID.(uint),
		CircleID:        input.CircleID,
		Name:            input.Name,
		Description:     input.Description,
		TargetFrequency: targetFrequency,
		IsPublic:        input.IsPublic,
		IsActive:        true,
	}
	if err := database.DB.Create(&habit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create habit"})
		return
	}

	c.JSON(http.StatusCreated, newHabitResponse(habit))
}

// GetHabits godoc
// @Summary      List my habits
// @Description  Lists the authenticated user's active habits.
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  HabitResponse
// @Router       /habits [get]
func GetHabits(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var habits []models.Habit
	if err := database.DB.Where("user_id = ? AND is_active = ?", viewerID, true).
		Order("created_at DESC").Find(&habits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habits"})
		return
	}

	response := make([]HabitResponse, 0, len(habits))
	for _, habit := range habits {
		response = append(response, newHabitResponse(habit))
	}
	c.JSON(http.StatusOK, response)
}

// GetHabitByID godoc
// @Summary      Get a habit
// @Description  Retrieves one of the authenticated user's habits.
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Habit ID"
// @Success      200  {object}  HabitResponse
// @Failure      404  {object}  ErrorResponse "Habit not found"
// @Router       /habits/{id} [get]
func GetHabitByID(c *gin.Context) {
	habit, ok := ownedHabit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newHabitResponse(*habit))
}

// UpdateHabit godoc
// @Summary      Update a habit
// @Description  Edits a habit's metadata. Streak fields change only through check-ins.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int        true "Habit ID"
// @Param        input body HabitInput true "New Habit Info"
// @Success      200  {object}  HabitResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Habit not found"
// @Router       /habits/{id} [put]
func UpdateHabit(c *gin.Context) {
	habit, ok := ownedHabit(c)
	if !ok {
		return
	}

	var input HabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit.Name = input.Name
	habit.Description = input.Description
	if input.TargetFrequency >= 1 {
		habit.TargetFrequency = input.TargetFrequency
	}
	habit.IsPublic = input.IsPublic
	habit.CircleID = input.CircleID

	if err := database.DB.Save(habit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update habit"})
		return
	}

	c.JSON(http.StatusOK, newHabitResponse(*habit))
}

// DeleteHabit godoc
// @Summary      Deactivate a habit
// @Description  Soft-deletes a habit by clearing its active flag; history is kept.
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Habit ID"
// @Success      200  {object}  map[string]string "{"message": "Habit deactivated"}"
// @Failure      404  {object}  ErrorResponse "Habit not found"
// @Router       /habits/{id} [delete]
func DeleteHabit(c *gin.Context) {
	habit, ok := ownedHabit(c)
	if !ok {
		return
	}

	if err := database.DB.Model(habit).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate habit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit deactivated"})
}

// ToggleHabitCompletion godoc
// @Summary      Check in on a habit
// @Description  Records a completion for a date. A second check-in for the same date toggles the entry back off; the streak is recomputed from history either way.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true  "Habit ID"
// @Param        input body CheckInInput false "Date and notes"
// @Success      200  {object}  map[string]interface{} "entry and updated habit"
// @Failure      400  {object}  ErrorResponse "Invalid date"
// @Failure      404  {object}  ErrorResponse "Habit not found"
// @Router       /habits/{id}/complete [post]
func ToggleHabitCompletion(c *gin.Context) {
	habit, ok := ownedHabit(c)
	if !ok {
		return
	}

	var input CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The handler, not the core, resolves "today" to a concrete date.
	date := streak.Day(time.Now())
	if input.Date != "" {
		parsed, err := streak.ParseDate(input.Date)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		date = parsed
	}

	var entries []models.HabitEntry
	if err := database.DB.Where("habit_id = ?", habit.ID).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load habit history"})
		return
	}

	entries, idx, created := streak.Toggle(habit.ID, entries, date, input.Notes)
	streak.Recompute(habit, entries, date)

	// Entry write and streak update succeed or fail together.
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if created {
			if err := tx.Create(&entries[idx]).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.HabitEntry{}).Where("id = ?", entries[idx].ID).
				Updates(map[string]interface{}{"completed": entries[idx].Completed, "notes": entries[idx].Notes}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Habit{}).Where("id = ?", habit.ID).
			Updates(map[string]interface{}{
				"current_streak": habit.CurrentStreak,
				"best_streak":    habit.BestStreak,
				"last_completed": habit.LastCompleted,
			}).Error
	})
	if txErr != nil {
		// The unique (habit, date) index turns a concurrent first check-in
		// into a conflict; any other failure is a server error.
		if status := txStatus(txErr); status == http.StatusConflict {
			c.JSON(status, gin.H{"error": "Entry already recorded for this date"})
		} else {
			c.JSON(status, gin.H{"error": "Failed to record check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry": newHabitEntryResponse(entries[idx]),
		"habit": newHabitResponse(*habit),
	})
}

// GetHabitEntries godoc
// @Summary      List habit entries
// @Description  Lists a habit's completion history, newest first.
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Habit ID"
// @Success      200  {array}  HabitEntryResponse
// @Failure      404  {object}  ErrorResponse "Habit not found"
// @Router       /habits/{id}/entries [get]
func GetHabitEntries(c *gin.Context) {
	habit, ok := ownedHabit(c)
	if !ok {
		return
	}

	var entries []models.HabitEntry
	if err := database.DB.Where("habit_id = ?", habit.ID).Order("date DESC").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}

	response := make([]HabitEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, newHabitEntryResponse(entry))
	}
	c.JSON(http.StatusOK, response)
}
