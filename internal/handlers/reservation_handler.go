package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/10kkyvl/planetarium-api/internal/booking"
	"github.com/10kkyvl/planetarium-api/internal/helpers"
	"github.com/10kkyvl/planetarium-api/internal/models"
)

type ReservationRequest struct {
	Tickets []booking.TicketRequest `json:"tickets" binding:"required,min=1,dive"`
}

type TicketView struct {
	Row       int       `json:"row"`
	Seat      int       `json:"seat"`
	SessionID uuid.UUID `json:"show_session"`
}

type ReservationView struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
	Tickets   []TicketView `json:"tickets"`
}

func toReservationView(reservation models.Reservation) ReservationView {
	tickets := make([]TicketView, 0, len(reservation.Tickets))
	for _, ticket := range reservation.Tickets {
		tickets = append(tickets, TicketView{
			Row:       ticket.Row,
			Seat:      ticket.Seat,
			SessionID: ticket.SessionID,
		})
	}
	return ReservationView{
		ID:        reservation.ID,
		UserID:    reservation.UserID,
		CreatedAt: reservation.CreatedAt,
		Tickets:   tickets,
	}
}

func currentIdentity(c *gin.Context) (booking.Identity, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return booking.Identity{}, false
	}
	role, _ := c.Get("role")
	roleName, _ := role.(string)
	return booking.Identity{UserID: userID.(uuid.UUID), Role: roleName}, true
}

func CreateReservation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req ReservationRequest
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

	engine := booking.NewEngine(gormDB)
	reservation, err := engine.CreateReservation(identity.UserID, req.Tickets)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUnauthorized):
			helpers.RespondWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, booking.ErrSessionNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, booking.ErrSeatTaken),
			errors.Is(err, booking.ErrInvalidSeat),
			errors.Is(err, booking.ErrDuplicateSeatInRequest),
			errors.Is(err, booking.ErrEmptyReservation):
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation.")
		}
		return
	}

	c.JSON(http.StatusCreated, toReservationView(*reservation))
}

func ListReservations(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	reservations, err := booking.NewEngine(gormDB).ListReservationsFor(identity)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reservations.")
		return
	}

	views := make([]ReservationView, 0, len(reservations))
	for _, reservation := range reservations {
		views = append(views, toReservationView(reservation))
	}

	c.JSON(http.StatusOK, views)
}

func GetReservation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	reservationID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	reservation, err := booking.NewEngine(gormDB).GetReservation(identity, reservationID)
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Reservation not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reservation.")
		return
	}

	c.JSON(http.StatusOK, toReservationView(*reservation))
}

// GetReservationQR renders a signed entry pass for a reservation as a PNG
// QR code. Gate staff scan it at the dome entrance; the HMAC signature makes
// forged passes detectable offline.
func GetReservationQR(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	reservationID, ok := helpers.ParseIDParam(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	reservation, err := booking.NewEngine(gormDB).GetReservation(identity, reservationID)
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Reservation not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reservation.")
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	payload := fmt.Sprintf("reservation:%s;user:%s", reservation.ID, reservation.UserID)
	qrData := fmt.Sprintf("%s;signature:%s", payload, helpers.SignPayload(payload, secret))

	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
