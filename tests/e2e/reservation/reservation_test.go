//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"restaurant-reservation/internal/handler/dto/request"
	"restaurant-reservation/internal/handler/dto/response"
	"restaurant-reservation/tests/common/builder"
	"restaurant-reservation/tests/common/dbtest"
	"restaurant-reservation/tests/common/httptest"
	"restaurant-reservation/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	reservationURL  = "/api/reservations/%s"
	cancelURL       = "/api/reservations/%s/cancel"
	orderItemsURL   = "/api/reservations/%s/orderItems"
	availabilityURL = "/api/availability?date=%s&startTime=%s&endTime=%s&partySize=%d&mode=%s"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// a week ahead in the restaurant's zone, clear of the same-day lead time
func bookingDate() string {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	return time.Now().In(tokyo).AddDate(0, 0, 7).Format("2006-01-02")
}

func createBody(seatID, date, start, end string, partySize int, mode string) request.CreateReservationRequest {
	return request.CreateReservationRequest{
		SeatID:    seatID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		PartySize: partySize,
		Mode:      mode,
	}
}

func (s *ReservationSuite) createReservation(token string, body request.CreateReservationRequest) *response.ReservationResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := httptest.DecodeJSON[response.ReservationEnvelope](t, w)
	require.NotNil(t, env.Reservation)
	return env.Reservation
}

// =============================================================================
// TestCreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	date := bookingDate()

	s.Run("Normal case: seat is claimed and an event is queued", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")

		got := s.createReservation(token, createBody("2table", date, "18:00", "20:00", 2, "dine_and_eat"))

		want := &response.ReservationResponse{
			UserID:    "guest-a",
			SeatID:    "2table",
			Date:      date,
			StartTime: "18:00",
			EndTime:   "20:00",
			PartySize: 2,
			Mode:      "dine_and_eat",
			IsPrimary: true,
			Status:    "active",
		}
		ignore := cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "GroupID", "CreatedAt", "UpdatedAt")
		if diff := cmp.Diff(want, got, ignore); diff != "" {
			t.Errorf("reservation mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, got.ID, got.GroupID, "a new group is keyed by its primary reservation")
		require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, "2table", date))
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "reservation.confirmed"))
	})

	s.Run("Normal case: second reservation joins the caller's group", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")

		primary := s.createReservation(token, createBody("4table", date, "18:00", "20:00", 4, "dine_and_eat"))
		body := createBody("2table", date, "18:00", "20:00", 2, "dine_and_eat")
		body.GroupID = &primary.GroupID
		member := s.createReservation(token, body)

		require.Equal(t, primary.GroupID, member.GroupID)
		require.False(t, member.IsPrimary)
	})

	s.Run("Error case: overlapping active reservation returns 409", func() {
		t := s.T()
		dbtest.InsertReservation(t, s.DB, "someone-else", "2table", date, "18:00", "20:00", 2)
		token := s.JWT.GenerateToken(t, "guest-a")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createBody("2table", date, "19:00", "21:00", 2, "dine_and_eat"), token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "no longer available")
	})

	s.Run("Normal case: touching windows do not conflict", func() {
		t := s.T()
		dbtest.InsertReservation(t, s.DB, "someone-else", "2table", date, "18:00", "20:00", 2)
		token := s.JWT.GenerateToken(t, "guest-a")

		s.createReservation(token, createBody("2table", date, "20:00", "22:00", 2, "dine_and_eat"))
		require.Equal(t, 2, dbtest.CountActiveReservations(t, s.DB, "2table", date))
	})

	s.Run("Error cases: invalid requests are rejected before any write", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")

		cases := []struct {
			name   string
			body   request.CreateReservationRequest
			status int
		}{
			{"too long", createBody("2table", date, "10:00", "15:00", 2, "dine_and_eat"), http.StatusBadRequest},
			{"too short", createBody("2table", date, "10:00", "10:30", 2, "dine_and_eat"), http.StatusBadRequest},
			{"inverted", createBody("2table", date, "12:00", "11:00", 2, "dine_and_eat"), http.StatusBadRequest},
			{"ends at closing", createBody("2table", date, "21:00", "23:00", 2, "dine_and_eat"), http.StatusBadRequest},
			{"party too big", createBody("2table", date, "18:00", "20:00", 3, "dine_and_eat"), http.StatusBadRequest},
			{"stool cannot dine", createBody("stool1", date, "18:00", "20:00", 1, "dine_and_eat"), http.StatusBadRequest},
			{"unknown seat", createBody("terrace", date, "18:00", "20:00", 2, "dine_and_eat"), http.StatusNotFound},
			{"unknown mode", createBody("2table", date, "18:00", "20:00", 2, "brunch"), http.StatusBadRequest},
		}
		for _, tc := range cases {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, tc.body, token)
			require.Equal(t, tc.status, w.Code, "%s: %s", tc.name, w.Body.String())
		}
		require.Zero(t, dbtest.CountActiveReservations(t, s.DB, "2table", date))
	})

	s.Run("Error case: missing or expired token returns 401", func() {
		t := s.T()
		body := createBody("2table", date, "18:00", "20:00", 2, "dine_and_eat")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, s.JWT.CreateExpiredToken(t, "guest-a"))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestConcurrentClaims - no double booking under racing requests
// =============================================================================

func (s *ReservationSuite) TestConcurrentClaims() {
	s.Run("Exactly one of many racing claims wins the seat", func() {
		t := s.T()
		date := bookingDate()
		const racers = 12

		tokens := make([]string, racers)
		for i := range tokens {
			tokens[i] = s.JWT.GenerateToken(t, fmt.Sprintf("racer-%d", i))
		}

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			codes = map[int]int{}
		)
		start := make(chan struct{})
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				// windows differ but all overlap 19:00-20:00
				body := createBody("couch", date, []string{"18:00", "19:00"}[i%2], []string{"20:00", "21:00"}[i%2], 4, "dine_and_eat")
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, tokens[i])
				mu.Lock()
				codes[w.Code]++
				mu.Unlock()
			}(i)
		}
		close(start)
		wg.Wait()

		require.Equal(t, 1, codes[http.StatusCreated], "codes: %v", codes)
		require.Equal(t, racers-1, codes[http.StatusConflict], "codes: %v", codes)
		require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, "couch", date))
	})
}

// =============================================================================
// TestIdempotentCreate
// =============================================================================

func (s *ReservationSuite) TestIdempotentCreate() {
	date := bookingDate()

	s.Run("Same key and body replays the stored reservation", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}
		body := createBody("6table", date, "12:00", "14:00", 5, "dine_and_eat")

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, body, token, headers)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, body, token, headers)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())

		a := httptest.DecodeJSON[response.ReservationEnvelope](t, first)
		b := httptest.DecodeJSON[response.ReservationEnvelope](t, second)
		require.Equal(t, a.Reservation.ID, b.Reservation.ID)
		require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, "6table", date))
	})

	s.Run("Same key with a different body returns 422", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			createBody("6table", date, "12:00", "14:00", 5, "dine_and_eat"), token, headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			createBody("6table", date, "15:00", "17:00", 5, "dine_and_eat"), token, headers)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Malformed key returns 400", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			createBody("6table", date, "12:00", "14:00", 5, "dine_and_eat"), token, map[string]string{"Idempotency-Key": "not-a-uuid"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestLifecycle - list, get, cancel, attach order items
// =============================================================================

func (s *ReservationSuite) TestLifecycle() {
	date := bookingDate()

	s.Run("Cancel is idempotent and frees the seat", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")
		created := s.createReservation(token, createBody("2table", date, "18:00", "20:00", 2, "dine_and_eat"))

		for j := 0; j < 2; j++ {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID), nil, token)
			var ok response.OKResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &ok)
			require.True(t, ok.OK)
		}
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "reservation.cancelled"))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, date, "18:00", "20:00", 2, "dine_and_eat"), nil, "")
		var avail response.AvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.Contains(t, avail.AvailableSeatIDs, "2table")

		s.createReservation(s.JWT.GenerateToken(t, "guest-b"), createBody("2table", date, "18:00", "20:00", 2, "dine_and_eat"))
	})

	s.Run("List returns own reservations ordered by date and start", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")
		later := s.createReservation(token, createBody("2table", date, "19:00", "21:00", 2, "dine_and_eat"))
		earlier := s.createReservation(token, createBody("4table", date, "12:00", "13:00", 3, "drinks_only"))
		s.createReservation(s.JWT.GenerateToken(t, "guest-b"), createBody("couch", date, "12:00", "13:00", 6, "drinks_only"))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?userId=guest-a", nil, token)
		var list response.ReservationListEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Reservations, 2)
		require.Equal(t, earlier.ID, list.Reservations[0].ID)
		require.Equal(t, later.ID, list.Reservations[1].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?userId=guest-b", nil, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Order items attach once and only by the owner", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")
		created := s.createReservation(token, createBody("2table", date, "18:00", "20:00", 2, "dine_and_eat"))
		url := fmt.Sprintf(orderItemsURL, created.ID)
		items := builder.NewOrderItemsRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, items, s.JWT.GenerateToken(t, "guest-b"))
		require.Equal(t, http.StatusForbidden, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, items, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, items, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, created.ID), nil, token)
		var got response.ReservationEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Len(t, got.Reservation.OrderItems, 2)
		require.Equal(t, int64(2*680000+120000), got.Reservation.TotalCents)
	})

	s.Run("Unknown reservation returns 404", func() {
		t := s.T()
		token := s.JWT.GenerateToken(t, "guest-a")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, uuid.New()), nil, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestSeatsAndAvailability
// =============================================================================

func (s *ReservationSuite) TestSeatsAndAvailability() {
	s.Run("Seat list follows catalog order", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/seats", nil, "")
		var list response.SeatListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Seats, 10)
		require.Equal(t, "stool1", list.Seats[0].ID)
		require.Equal(t, "couch", list.Seats[len(list.Seats)-1].ID)
	})

	s.Run("Booked and excluded seats are left out", func() {
		t := s.T()
		date := bookingDate()
		dbtest.InsertReservation(t, s.DB, "someone", "2table", date, "18:00", "20:00", 2)

		url := fmt.Sprintf(availabilityURL, date, "19:00", "21:00", 2, "dine_and_eat") + "&excludeSeatIds=4table,6table"
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		var avail response.AvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.Equal(t, []string{"2table2", "4table2", "couch"}, avail.AvailableSeatIDs)
	})

	s.Run("Invalid window returns 400", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, bookingDate(), "08:00", "10:00", 2, "dine_and_eat"), nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
