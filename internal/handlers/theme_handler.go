package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/10kkyvl/planetarium-api/internal/helpers"
	"github.com/10kkyvl/planetarium-api/internal/models"
)

type ThemeRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type ThemeView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toThemeView(theme models.Theme) ThemeView {
	return ThemeView{ID: theme.ID, Name: theme.Name}
}

func CreateTheme(c *gin.Context) {
	var req ThemeRequest
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

	theme := models.Theme{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := gormDB.Create(&theme).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create theme.")
		return
	}

	c.JSON(http.StatusCreated, toThemeView(theme))
}

func ListThemes(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var themes []models.Theme
	if err := gormDB.Order("name").Find(&themes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving themes.")
		return
	}

	views := make([]ThemeView, 0, len(themes))
	for _, theme := range themes {
		views = append(views, toThemeView(theme))
	}

	c.JSON(http.StatusOK, views)
}

func UpdateTheme(c *gin.Context) {
	themeID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	var req ThemeRequest
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

	var theme models.Theme
	if err := gormDB.Where("id = ?", themeID).First(&theme).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Theme not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding theme.")
		return
	}

	theme.Name = req.Name

	if err := gormDB.Save(&theme).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update theme.")
		return
	}

	c.JSON(http.StatusOK, toThemeView(theme))
}

func DeleteTheme(c *gin.Context) {
	themeID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", themeID).Delete(&models.Theme{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete theme.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Theme not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Theme deleted successfully.",
	})
}
