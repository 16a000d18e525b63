package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseIDParam reads the ":id" route parameter as a UUID. On failure it
// writes a 400 response and returns false.
func ParseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid id format.")
		return uuid.Nil, false
	}
	return id, true
}
