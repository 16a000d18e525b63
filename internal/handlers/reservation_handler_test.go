package handlers_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/10kkyvl/planetarium-api/internal/models"
)

func reservationBody(sessionID uuid.UUID, seats ...[2]int) string {
	var b strings.Builder
	b.WriteString(`{"tickets":[`)
	for i, s := range seats {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"row":`)
		b.WriteString(strconv.Itoa(s[0]))
		b.WriteString(`,"seat":`)
		b.WriteString(strconv.Itoa(s[1]))
		b.WriteString(`,"show_session":"`)
		b.WriteString(sessionID.String())
		b.WriteString(`"}`)
	}
	b.WriteString(`]}`)
	return b.String()
}

func TestCreateReservationRequiresAuth(t *testing.T) {
	r, db := newTestRouter(t)
	session := seedCatalog(t, db)

	w := doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(session.ID, [2]int{3, 5}), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401; body %s", w.Code, w.Body.String())
	}
	if got := countRows(t, db, &models.Reservation{}); got != 0 {
		t.Errorf("persisted %d reservations, want 0", got)
	}
}

func TestCreateReservationPersistsTickets(t *testing.T) {
	r, db := newTestRouter(t)
	session := seedCatalog(t, db)
	registerUser(t, r, "visitor")
	token := loginUser(t, r, "visitor")

	w := doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(session.ID, [2]int{3, 5}, [2]int{3, 6}), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}

	var view struct {
		ID      string `json:"id"`
		User    string `json:"user"`
		Tickets []struct {
			Row         int    `json:"row"`
			Seat        int    `json:"seat"`
			ShowSession string `json:"show_session"`
		} `json:"tickets"`
	}
	decodeBody(t, w, &view)
	if view.ID == "" {
		t.Error("response is missing the reservation id")
	}
	if len(view.Tickets) != 2 {
		t.Fatalf("response carries %d tickets, want 2", len(view.Tickets))
	}
	for _, ticket := range view.Tickets {
		if ticket.ShowSession != session.ID.String() {
			t.Errorf("ticket session = %q, want %q", ticket.ShowSession, session.ID)
		}
	}

	if got := countRows(t, db, &models.Reservation{}); got != 1 {
		t.Errorf("persisted %d reservations, want 1", got)
	}
	if got := countRows(t, db, &models.Ticket{}); got != 2 {
		t.Errorf("persisted %d tickets, want 2", got)
	}
}

func TestCreateReservationSeatTaken(t *testing.T) {
	r, db := newTestRouter(t)
	session := seedCatalog(t, db)
	registerUser(t, r, "visitor")
	token := loginUser(t, r, "visitor")

	body := reservationBody(session.ID, [2]int{3, 5}, [2]int{3, 6})

	w := doJSON(t, r, http.MethodPost, "/reservations", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("first booking: status = %d, body %s", w.Code, w.Body.String())
	}

	// The identical payload again, even from the same user, must be rejected
	// without creating anything.
	w = doJSON(t, r, http.MethodPost, "/reservations", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second booking: status = %d, want 400; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Seat is already taken") {
		t.Errorf("error body %q does not mention the taken seat", w.Body.String())
	}

	if got := countRows(t, db, &models.Reservation{}); got != 1 {
		t.Errorf("persisted %d reservations, want 1", got)
	}
	if got := countRows(t, db, &models.Ticket{}); got != 2 {
		t.Errorf("persisted %d tickets, want 2", got)
	}
}

func TestCreateReservationInvalidSeat(t *testing.T) {
	r, db := newTestRouter(t)
	session := seedCatalog(t, db)
	registerUser(t, r, "visitor")
	token := loginUser(t, r, "visitor")

	// The seeded dome is 10 rows of 15 seats.
	w := doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(session.ID, [2]int{11, 5}), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("row out of range: status = %d, want 400; body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(session.ID, [2]int{3, 16}), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("seat out of range: status = %d, want 400; body %s", w.Code, w.Body.String())
	}

	if got := countRows(t, db, &models.Ticket{}); got != 0 {
		t.Errorf("persisted %d tickets, want 0", got)
	}
}

func TestCreateReservationUnknownSession(t *testing.T) {
	r, db := newTestRouter(t)
	seedCatalog(t, db)
	registerUser(t, r, "visitor")
	token := loginUser(t, r, "visitor")

	w := doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(uuid.New(), [2]int{3, 5}), token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", w.Code, w.Body.String())
	}
}

func TestCreateReservationEmptyTickets(t *testing.T) {
	r, _ := newTestRouter(t)
	registerUser(t, r, "visitor")
	token := loginUser(t, r, "visitor")

	w := doJSON(t, r, http.MethodPost, "/reservations", `{"tickets":[]}`, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
	}
}

func TestListReservationsScopedToOwner(t *testing.T) {
	r, db := newTestRouter(t)
	session := seedCatalog(t, db)
	registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(session.ID, [2]int{1, 1}), aliceToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("alice booking: status = %d, body %s", w.Code, w.Body.String())
	}

	var reservations []struct {
		ID string `json:"id"`
	}

	w = doJSON(t, r, http.MethodGet, "/reservations", "", aliceToken)
	decodeBody(t, w, &reservations)
	if len(reservations) != 1 {
		t.Errorf("alice sees %d reservations, want 1", len(reservations))
	}

	w = doJSON(t, r, http.MethodGet, "/reservations", "", bobToken)
	decodeBody(t, w, &reservations)
	if len(reservations) != 0 {
		t.Errorf("bob sees %d reservations, want 0", len(reservations))
	}

	registerUser(t, r, "admin")
	promoteToStaff(t, db, "admin")
	staffToken := loginUser(t, r, "admin")

	w = doJSON(t, r, http.MethodGet, "/reservations", "", staffToken)
	decodeBody(t, w, &reservations)
	if len(reservations) != 1 {
		t.Errorf("staff sees %d reservations, want 1", len(reservations))
	}
}

func TestGetReservationHiddenFromStrangers(t *testing.T) {
	r, db := newTestRouter(t)
	session := seedCatalog(t, db)
	registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(session.ID, [2]int{2, 2}), aliceToken)
	var view struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &view)

	w = doJSON(t, r, http.MethodGet, "/reservations/"+view.ID, "", aliceToken)
	if w.Code != http.StatusOK {
		t.Errorf("owner: status = %d, want 200", w.Code)
	}

	// Existence is not leaked to other customers.
	w = doJSON(t, r, http.MethodGet, "/reservations/"+view.ID, "", bobToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("stranger: status = %d, want 404", w.Code)
	}

	registerUser(t, r, "admin")
	promoteToStaff(t, db, "admin")
	staffToken := loginUser(t, r, "admin")

	w = doJSON(t, r, http.MethodGet, "/reservations/"+view.ID, "", staffToken)
	if w.Code != http.StatusOK {
		t.Errorf("staff: status = %d, want 200", w.Code)
	}
}

func TestGetReservationQR(t *testing.T) {
	r, db := newTestRouter(t)
	session := seedCatalog(t, db)
	registerUser(t, r, "visitor")
	token := loginUser(t, r, "visitor")

	w := doJSON(t, r, http.MethodPost, "/reservations",
		reservationBody(session.ID, [2]int{4, 7}), token)
	var view struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &view)

	w = doJSON(t, r, http.MethodGet, "/reservations/"+view.ID+"/qr", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("QR response body is empty")
	}
}
