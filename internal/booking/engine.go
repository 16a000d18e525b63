// Package booking implements the reservation engine: validating ticket
// requests against the catalog and committing a reservation atomically.
// Seat uniqueness under concurrent requests is enforced by the database's
// unique index on (session_id, row, seat), not by application-level checks.
package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/10kkyvl/planetarium-api/internal/models"
)

var (
	ErrUnauthorized           = errors.New("must be authenticated to create a reservation")
	ErrEmptyReservation       = errors.New("a reservation requires at least one ticket")
	ErrSessionNotFound        = errors.New("show session not found")
	ErrInvalidSeat            = errors.New("seat is outside the dome layout")
	ErrDuplicateSeatInRequest = errors.New("duplicate seat in reservation request")
	ErrSeatTaken              = errors.New("Seat is already taken")
	ErrReservationNotFound    = errors.New("reservation not found")
)

// TicketRequest is one requested seat claim within a reservation.
type TicketRequest struct {
	Row       int       `json:"row" binding:"required,min=1"`
	Seat      int       `json:"seat" binding:"required,min=1"`
	SessionID uuid.UUID `json:"show_session" binding:"required"`
}

// Identity is the resolved caller passed explicitly into every engine call.
// Staff identities may view all reservations, others only their own.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) IsStaff() bool {
	return i.Role == models.RoleStaff
}

type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

type seatKey struct {
	session   uuid.UUID
	row, seat int
}

// CreateReservation validates the requested seats and commits one
// Reservation plus all its Tickets in a single transaction. Either every
// ticket is persisted or none is. A concurrent booking of the same seat is
// resolved by the unique index: the losing transaction rolls back and the
// caller gets ErrSeatTaken.
func (e *Engine) CreateReservation(userID uuid.UUID, requests []TicketRequest) (*models.Reservation, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if len(requests) == 0 {
		return nil, ErrEmptyReservation
	}

	sessions := make(map[uuid.UUID]models.Session)
	for _, request := range requests {
		if _, ok := sessions[request.SessionID]; ok {
			continue
		}
		var session models.Session
		if err := e.db.Preload("Dome").Where("id = ?", request.SessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, request.SessionID)
			}
			return nil, err
		}
		sessions[request.SessionID] = session
	}

	seen := make(map[seatKey]bool, len(requests))
	for _, request := range requests {
		dome := sessions[request.SessionID].Dome
		if request.Row < 1 || request.Row > dome.Rows || request.Seat < 1 || request.Seat > dome.SeatsInRow {
			return nil, fmt.Errorf("%w: row %d seat %d does not fit dome %q (%d rows x %d seats)",
				ErrInvalidSeat, request.Row, request.Seat, dome.Name, dome.Rows, dome.SeatsInRow)
		}

		key := seatKey{session: request.SessionID, row: request.Row, seat: request.Seat}
		if seen[key] {
			return nil, fmt.Errorf("%w: row %d seat %d", ErrDuplicateSeatInRequest, request.Row, request.Seat)
		}
		seen[key] = true

		// Fast-path check so the common conflict fails before opening a
		// transaction. The unique index still backs this up under races.
		var count int64
		err := e.db.Model(&models.Ticket{}).
			Where(map[string]interface{}{"session_id": request.SessionID, "row": request.Row, "seat": request.Seat}).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: row %d seat %d", ErrSeatTaken, request.Row, request.Seat)
		}
	}

	reservation := models.Reservation{ID: uuid.New(), UserID: userID}
	tickets := make([]models.Ticket, 0, len(requests))
	for _, request := range requests {
		tickets = append(tickets, models.Ticket{
			ID:            uuid.New(),
			Row:           request.Row,
			Seat:          request.Seat,
			SessionID:     request.SessionID,
			ReservationID: reservation.ID,
		})
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		return tx.Create(&tickets).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}

	reservation.Tickets = tickets
	return &reservation, nil
}

// AuthorizeReservationView reports whether the identity may see the
// reservation: owners see their own, staff see everything.
func AuthorizeReservationView(identity Identity, reservation models.Reservation) bool {
	return identity.IsStaff() || reservation.UserID == identity.UserID
}

// ListReservationsFor returns all reservations visible to the identity,
// newest first, with tickets embedded.
func (e *Engine) ListReservationsFor(identity Identity) ([]models.Reservation, error) {
	query := e.db.Preload("Tickets").Order("created_at DESC")
	if !identity.IsStaff() {
		query = query.Where("user_id = ?", identity.UserID)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetReservation loads a single reservation if the identity may view it.
// A reservation hidden from the caller reports not-found rather than
// revealing that it exists.
func (e *Engine) GetReservation(identity Identity, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := e.db.Preload("Tickets").Where("id = ?", id).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if !AuthorizeReservationView(identity, reservation) {
		return nil, ErrReservationNotFound
	}
	return &reservation, nil
}
