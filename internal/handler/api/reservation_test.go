//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"restaurant-reservation/internal/domain/reservation"
	"restaurant-reservation/internal/domain/seat"
	"restaurant-reservation/internal/handler/api"
	resdto "restaurant-reservation/internal/handler/dto/response"
	"restaurant-reservation/internal/handler/middleware"
	"restaurant-reservation/internal/pkg/errs"
	"restaurant-reservation/internal/usecase/commands"
	"restaurant-reservation/internal/usecase/queries"
	"restaurant-reservation/tests/common/builder"
	"restaurant-reservation/tests/common/httptest"
	"restaurant-reservation/tests/common/testutil"
	commandsmock "restaurant-reservation/tests/mock/commands"
	queriesmock "restaurant-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testUserID = "user-1"

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	// Stand-in for token verification
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetUserID(c, testUserID)
		c.Next()
	}

	g := s.router.Group("/api/reservations", authMiddleware)
	g.POST("", s.handler.Create)
	g.GET("", s.handler.List)
	g.GET("/:id", s.handler.Get)
	g.POST("/:id/cancel", s.handler.Cancel)
	g.POST("/:id/orderItems", s.handler.AttachOrderItems)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/api/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	expectedInput := b.BuildCreateInput()
	created := &commands.CreateReservationResult{Reservation: b.BuildView()}

	s.Run("success: returns 201 with the reservation", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), testUserID, expectedInput, (*uuid.UUID)(nil)).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ReservationEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Require().NotNil(body.Reservation)
		s.Equal(b.ID, body.Reservation.ID)
		s.Equal("2table", body.Reservation.SeatID)
		s.Equal("18:00", body.Reservation.StartTime)
		s.Equal("active", body.Reservation.Status)
	})

	s.Run("success: replay with the same idempotency key returns 200", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), testUserID, expectedInput, &key).
			Return(&commands.CreateReservationResult{Reservation: b.BuildView(), IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": key.String()})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 400 on binding failures", func() {
		cases := []testCaseReservation{
			{name: "missing seatId", mutate: testutil.Field("seatId", nil), expectCode: http.StatusBadRequest},
			{name: "missing date", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
			{name: "malformed date", mutate: testutil.Field("date", "2025/06/02"), expectCode: http.StatusBadRequest},
			{name: "malformed startTime", mutate: testutil.Field("startTime", "6pm"), expectCode: http.StatusBadRequest},
			{name: "partySize zero", mutate: testutil.Field("partySize", 0), expectCode: http.StatusBadRequest},
			{name: "negative partySize", mutate: testutil.Field("partySize", -2), expectCode: http.StatusBadRequest},
			{name: "unknown mode", mutate: testutil.Field("mode", "brunch"), expectCode: http.StatusBadRequest},
			{name: "groupId not a uuid", mutate: testutil.Field("groupId", "group-1"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.BodyMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"invalid request", errs.Mark(errors.New("too long"), reservation.ErrInvalidRequest), http.StatusBadRequest, "Invalid reservation request"},
			{"unknown seat", seat.ErrSeatNotFound, http.StatusNotFound, "Seat not found"},
			{"unknown group", errs.ErrGroupNotFound, http.StatusNotFound, "group"},
			{"group of another user", errs.ErrForbidden, http.StatusForbidden, "Forbidden"},
			{"seat taken", errs.Mark(errors.New("23P01"), errs.ErrReservationConflict), http.StatusConflict, "Seat no longer available"},
			{"key in flight", errs.ErrDuplicateRequest, http.StatusConflict, "in progress"},
			{"key reused", errs.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "Idempotency key reused"},
			{"store down", errs.Mark(errors.New("dial tcp"), errs.ErrStoreUnavailable), http.StatusServiceUnavailable, "unavailable"},
			{"anything else", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReservation(gomock.Any(), testUserID, expectedInput, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	s.Run("success: returns reservations in store order", func() {
		first, second := builder.NewReservationBuilder().BuildView(), builder.NewReservationBuilder().BuildView()
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), testUserID, testUserID).
			Return([]*queries.ReservationView{first, second}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?userId="+testUserID, nil, "bearer-token")

		var body resdto.ReservationListEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Reservations, 2)
		s.Equal(first.ID, body.Reservations[0].ID)
		s.Equal(second.ID, body.Reservations[1].ID)
	})

	s.Run("error: userId is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: other users are forbidden", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), testUserID, "user-2").Return(nil, errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?userId=user-2", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.OrderItems = []reservation.OrderItem{{ItemID: "course-a", Name: "Seasonal course", Quantity: 2, PriceCents: 680000}}
	}).BuildView()
	url := "/api/reservations/" + view.ID.String()

	s.Run("success: includes order items and total", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.ReservationEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Reservation.OrderItems, 1)
		s.Equal(int64(680000), body.Reservation.OrderItems[0].Price)
		s.Equal(int64(1360000), body.Reservation.TotalCents)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testUserID, view.ID).Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestCancel / TestAttachOrderItems
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/api/reservations/" + id.String() + "/cancel"

	s.Run("success: returns ok", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), testUserID, id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.OKResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.OK)
	})

	s.Run("error: not the owner", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), testUserID, id).Return(errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

func (s *ReservationHandlerTestSuite) TestAttachOrderItems() {
	id := uuid.New()
	url := "/api/reservations/" + id.String() + "/orderItems"
	reqBody := builder.NewOrderItemsRequestDTO()

	s.Run("success: items are passed through in minor units", func() {
		s.mockCommands.EXPECT().AttachOrderItems(gomock.Any(), testUserID, id, []commands.OrderItemInput{
			{ItemID: "course-a", Name: "Seasonal course", Quantity: 2, PriceCents: 680000},
			{ItemID: "sake-1", Name: "Junmai sake", Quantity: 1, PriceCents: 120000},
		}).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: empty list", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"items": []any{}}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: item without quantity", func() {
		body := map[string]any{"items": []map[string]any{{"itemId": "x", "name": "x", "price": 100}}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: already attached", func() {
		s.mockCommands.EXPECT().AttachOrderItems(gomock.Any(), testUserID, id, gomock.Any()).
			Return(reservation.ErrOrderItemsAlreadyAttached).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already attached")
	})

	s.Run("error: cancelled reservation", func() {
		s.mockCommands.EXPECT().AttachOrderItems(gomock.Any(), testUserID, id, gomock.Any()).
			Return(reservation.ErrReservationCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cancelled")
	})
}
