package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/10kkyvl/planetarium-api/internal/helpers"
	"github.com/10kkyvl/planetarium-api/internal/models"
)

type SessionRequest struct {
	ShowID   uuid.UUID `json:"show" binding:"required"`
	DomeID   uuid.UUID `json:"dome" binding:"required"`
	ShowTime time.Time `json:"show_time" binding:"required"`
}

// SessionListView flattens show and dome to their display names.
type SessionListView struct {
	ID       uuid.UUID `json:"id"`
	Show     string    `json:"show"`
	Dome     string    `json:"dome"`
	ShowTime time.Time `json:"show_time"`
}

// SessionDetailView embeds the full show (with themes) and dome.
type SessionDetailView struct {
	ID       uuid.UUID `json:"id"`
	Show     ShowView  `json:"show"`
	Dome     DomeView  `json:"dome"`
	ShowTime time.Time `json:"show_time"`
}

func CreateSession(c *gin.Context) {
	var req SessionRequest
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
	if err := gormDB.Where("id = ?", req.ShowID).First(&show).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Show not found.")
		return
	}

	var dome models.Dome
	if err := gormDB.Where("id = ?", req.DomeID).First(&dome).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Dome not found.")
		return
	}

	session := models.Session{
		ID:       uuid.New(),
		ShowID:   show.ID,
		DomeID:   dome.ID,
		ShowTime: req.ShowTime,
	}

	if err := gormDB.Create(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusConflict, "Dome is already scheduled at this time.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create session.")
		return
	}

	c.JSON(http.StatusCreated, SessionListView{
		ID:       session.ID,
		Show:     show.Title,
		Dome:     dome.Name,
		ShowTime: session.ShowTime,
	})
}

func ListSessions(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var sessions []models.Session
	if err := gormDB.Preload("Show").Preload("Dome").Order("show_time").Find(&sessions).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sessions.")
		return
	}

	views := make([]SessionListView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, SessionListView{
			ID:       session.ID,
			Show:     session.Show.Title,
			Dome:     session.Dome.Name,
			ShowTime: session.ShowTime,
		})
	}

	c.JSON(http.StatusOK, views)
}

func GetSession(c *gin.Context) {
	sessionID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var session models.Session
	if err := gormDB.Preload("Show.Themes").Preload("Dome").Where("id = ?", sessionID).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Session not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving session.")
		return
	}

	c.JSON(http.StatusOK, SessionDetailView{
		ID:       session.ID,
		Show:     toShowView(session.Show),
		Dome:     toDomeView(session.Dome),
		ShowTime: session.ShowTime,
	})
}

func UpdateSession(c *gin.Context) {
	sessionID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	var req SessionRequest
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

	var session models.Session
	if err := gormDB.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Session not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding session.")
		return
	}

	var show models.Show
	if err := gormDB.Where("id = ?", req.ShowID).First(&show).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Show not found.")
		return
	}

	var dome models.Dome
	if err := gormDB.Where("id = ?", req.DomeID).First(&dome).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Dome not found.")
		return
	}

	session.ShowID = show.ID
	session.DomeID = dome.ID
	session.ShowTime = req.ShowTime

	if err := gormDB.Save(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusConflict, "Dome is already scheduled at this time.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update session.")
		return
	}

	c.JSON(http.StatusOK, SessionListView{
		ID:       session.ID,
		Show:     show.Title,
		Dome:     dome.Name,
		ShowTime: session.ShowTime,
	})
}

func DeleteSession(c *gin.Context) {
	sessionID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", sessionID).Delete(&models.Session{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete session.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Session not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session deleted successfully.",
	})
}
