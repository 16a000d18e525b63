package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/10kkyvl/planetarium-api/internal/helpers"
	"github.com/10kkyvl/planetarium-api/internal/models"
)

type ShowRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Themes      []string `json:"themes"`
}

type ShowSummaryView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// ShowView embeds the show's themes; used standalone and inside the session
// detail view.
type ShowView struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Themes      []ThemeView `json:"themes"`
}

type SessionSummaryView struct {
	ID       uuid.UUID `json:"id"`
	Dome     string    `json:"dome"`
	ShowTime time.Time `json:"show_time"`
}

type ShowDetailView struct {
	ShowView
	Sessions []SessionSummaryView `json:"sessions"`
}

func toShowView(show models.Show) ShowView {
	themes := make([]ThemeView, 0, len(show.Themes))
	for _, theme := range show.Themes {
		themes = append(themes, toThemeView(theme))
	}
	return ShowView{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Themes:      themes,
	}
}

func CreateShow(c *gin.Context) {
	var req ShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var showThemes []models.Theme
	for _, themeName := range req.Themes {
		var theme models.Theme
		if err := gormDB.Where("name = ?", themeName).FirstOrCreate(&theme, models.Theme{Name: themeName}).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error processing themes.")
			return
		}
		showThemes = append(showThemes, theme)
	}

	show := models.Show{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Themes:      showThemes,
	}

	if err := gormDB.Create(&show).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create show.")
		return
	}

	c.JSON(http.StatusCreated, toShowView(show))
}

func ListShows(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var shows []models.Show
	if err := gormDB.Order("title").Find(&shows).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving shows.")
		return
	}

	views := make([]ShowSummaryView, 0, len(shows))
	for _, show := range shows {
		views = append(views, ShowSummaryView{
			ID:          show.ID,
			Title:       show.Title,
			Description: show.Description,
		})
	}

	c.JSON(http.StatusOK, views)
}

func GetShow(c *gin.Context) {
	showID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var show models.Show
	if err := gormDB.Preload("Themes").Preload("Sessions.Dome").Where("id = ?", showID).First(&show).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Show not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving show.")
		return
	}

	sessions := make([]SessionSummaryView, 0, len(show.Sessions))
	for _, session := range show.Sessions {
		sessions = append(sessions, SessionSummaryView{
			ID:       session.ID,
			Dome:     session.Dome.Name,
			ShowTime: session.ShowTime,
		})
	}

	c.JSON(http.StatusOK, ShowDetailView{
		ShowView: toShowView(show),
		Sessions: sessions,
	})
}

func UpdateShow(c *gin.Context) {
	showID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	var req ShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var show models.Show
	if err := gormDB.Where("id = ?", showID).First(&show).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Show not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding show.")
		return
	}

	show.Title = req.Title
	show.Description = req.Description

	var updatedThemes []models.Theme
	for _, themeName := range req.Themes {
		var theme models.Theme
		if err := gormDB.Where("name = ?", themeName).FirstOrCreate(&theme, models.Theme{Name: themeName}).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error processing themes.")
			return
		}
		updatedThemes = append(updatedThemes, theme)
	}

	if err := gormDB.Save(&show).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update show.")
		return
	}

	if err := gormDB.Model(&show).Association("Themes").Replace(updatedThemes); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating themes.")
		return
	}

	show.Themes = updatedThemes
	c.JSON(http.StatusOK, toShowView(show))
}

func DeleteShow(c *gin.Context) {
	showID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", showID).Delete(&models.Show{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete show.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Show not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Show deleted successfully.",
	})
}
