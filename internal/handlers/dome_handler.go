package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/10kkyvl/planetarium-api/internal/helpers"
	"github.com/10kkyvl/planetarium-api/internal/models"
)

type DomeRequest struct {
	Name       string `json:"name" binding:"required"`
	Rows       int    `json:"rows" binding:"required,min=1"`
	SeatsInRow int    `json:"seats_in_row" binding:"required,min=1"`
}

type DomeView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Rows       int       `json:"rows"`
	SeatsInRow int       `json:"seats_in_row"`
}

func toDomeView(dome models.Dome) DomeView {
	return DomeView{
		ID:         dome.ID,
		Name:       dome.Name,
		Rows:       dome.Rows,
		SeatsInRow: dome.SeatsInRow,
	}
}

func CreateDome(c *gin.Context) {
	var req DomeRequest
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

	dome := models.Dome{
		ID:         uuid.New(),
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}

	if err := gormDB.Create(&dome).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create dome.")
		return
	}

	c.JSON(http.StatusCreated, toDomeView(dome))
}

func ListDomes(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var domes []models.Dome
	if err := gormDB.Order("name").Find(&domes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving domes.")
		return
	}

	views := make([]DomeView, 0, len(domes))
	for _, dome := range domes {
		views = append(views, toDomeView(dome))
	}

	c.JSON(http.StatusOK, views)
}

func UpdateDome(c *gin.Context) {
	domeID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	var req DomeRequest
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

	var dome models.Dome
	if err := gormDB.Where("id = ?", domeID).First(&dome).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Dome not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding dome.")
		return
	}

	dome.Name = req.Name
	dome.Rows = req.Rows
	dome.SeatsInRow = req.SeatsInRow

	if err := gormDB.Save(&dome).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update dome.")
		return
	}

	c.JSON(http.StatusOK, toDomeView(dome))
}

func DeleteDome(c *gin.Context) {
	domeID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", domeID).Delete(&models.Dome{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete dome.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Dome not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dome deleted successfully.",
	})
}
