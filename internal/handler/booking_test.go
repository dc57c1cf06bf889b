package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Preethi-Heba/flight-booking-app/internal/model"
	"github.com/Preethi-Heba/flight-booking-app/internal/queue"
	"github.com/Preethi-Heba/flight-booking-app/internal/repository"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, userID, flightID uint64) (*model.Booking, error) {
	args := m.Called(ctx, userID, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingStore) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.BookingDetail), args.Error(1)
}

// capturePublish replaces the RabbitMQ publisher for the duration of a
// test and records every event it would have sent.
func capturePublish(t *testing.T) *[]queue.BookingConfirmedEvent {
	t.Helper()
	var events []queue.BookingConfirmedEvent
	orig := publishEvent
	publishEvent = func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
		events = append(events, ev)
		return nil
	}
	t.Cleanup(func() { publishEvent = orig })
	return &events
}

func bookRequest(userID, flightID uint64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/flights/"+strconv.FormatUint(flightID, 10)+"/book", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(flightID, 10))
	c.Set("user_id", float64(userID)) // as the JWT middleware stores it
	return c, rec
}

func TestBookingHandler_Book_Success(t *testing.T) {
	events := capturePublish(t)
	bookings := &MockBookingStore{}
	flights := &MockFlightStore{}
	h := NewBookingHandler(bookings, flights)

	created := &model.Booking{ID: 11, UserID: 1, FlightID: 2, CreatedAt: time.Now().UTC()}
	bookings.On("Create", mock.Anything, uint64(1), uint64(2)).Return(created, nil).Once()
	flights.On("GetByID", mock.Anything, uint64(2)).Return(&model.Flight{
		ID: 2, FlightNumber: "AI202", Departure: "Mumbai", Arrival: "Bangalore",
		DepartureTime: time.Now().UTC(), Price: 4000, SeatsAvailable: 29,
	}, nil).Once()

	c, rec := bookRequest(1, 2)
	assert.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Booking
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(11), got.ID)

	assert.Len(t, *events, 1)
	assert.Equal(t, uint64(11), (*events)[0].BookingID)
	assert.Equal(t, "AI202", (*events)[0].FlightNumber)
	assert.Equal(t, 29, (*events)[0].SeatsLeft)

	bookings.AssertExpectations(t)
	flights.AssertExpectations(t)
}

func TestBookingHandler_Book_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"flight not found", repository.ErrFlightNotFound, http.StatusNotFound},
		{"already booked", repository.ErrAlreadyBooked, http.StatusConflict},
		{"sold out", repository.ErrSoldOut, http.StatusConflict},
		{"store failure", errors.New("mysql is down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := capturePublish(t)
			bookings := &MockBookingStore{}
			flights := &MockFlightStore{}
			h := NewBookingHandler(bookings, flights)

			bookings.On("Create", mock.Anything, uint64(1), uint64(2)).Return(nil, tc.err).Once()

			c, rec := bookRequest(1, 2)
			assert.NoError(t, h.Book(c))
			assert.Equal(t, tc.status, rec.Code)

			// Failed bookings never publish confirmations.
			assert.Empty(t, *events)
			flights.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingHandler_Book_Unauthorized(t *testing.T) {
	h := NewBookingHandler(&MockBookingStore{}, &MockFlightStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/flights/2/book", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")
	// no user_id in context

	assert.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingHandler_MyBookings(t *testing.T) {
	bookings := &MockBookingStore{}
	h := NewBookingHandler(bookings, &MockFlightStore{})

	bookings.On("ListByUser", mock.Anything, uint64(7)).Return([]model.BookingDetail{
		{ID: 3, FlightID: 1, FlightNumber: "AI101", Departure: "Chennai", Arrival: "Delhi", Price: 5000},
	}, nil).Once()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(7))

	assert.NoError(t, h.MyBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.BookingDetail
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "AI101", got[0].FlightNumber)

	bookings.AssertExpectations(t)
}

// fakeLedger is an in-memory stand-in for the flight and booking
// repositories with the same check order as the SQL transaction:
// flight existence, then duplicate booking, then seat availability.
type fakeLedger struct {
	flights  map[uint64]*model.Flight
	capacity map[uint64]int
	bookings []model.Booking
	nextID   uint64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{flights: map[uint64]*model.Flight{}, capacity: map[uint64]int{}, nextID: 1}
}

func (l *fakeLedger) addFlight(f model.Flight) {
	l.flights[f.ID] = &f
	l.capacity[f.ID] = f.SeatsAvailable
}

func (l *fakeLedger) Create(ctx context.Context, userID, flightID uint64) (*model.Booking, error) {
	f, ok := l.flights[flightID]
	if !ok {
		return nil, repository.ErrFlightNotFound
	}
	for _, b := range l.bookings {
		if b.UserID == userID && b.FlightID == flightID {
			return nil, repository.ErrAlreadyBooked
		}
	}
	if f.SeatsAvailable <= 0 {
		return nil, repository.ErrSoldOut
	}
	f.SeatsAvailable--
	b := model.Booking{ID: l.nextID, UserID: userID, FlightID: flightID, CreatedAt: time.Now().UTC()}
	l.nextID++
	l.bookings = append(l.bookings, b)
	return &b, nil
}

func (l *fakeLedger) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	out := make([]model.BookingDetail, 0)
	for _, b := range l.bookings {
		if b.UserID != userID {
			continue
		}
		f := l.flights[b.FlightID]
		out = append(out, model.BookingDetail{
			ID: b.ID, FlightID: f.ID, FlightNumber: f.FlightNumber,
			Departure: f.Departure, Arrival: f.Arrival, Price: f.Price, BookedAt: b.CreatedAt,
		})
	}
	return out, nil
}

func (l *fakeLedger) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	f, ok := l.flights[id]
	if !ok {
		return nil, repository.ErrFlightNotFound
	}
	cp := *f
	return &cp, nil
}

func (l *fakeLedger) List(ctx context.Context) ([]model.Flight, error) { return nil, nil }

// seatInvariant checks seats_available == capacity - bookings for
// every flight in the ledger.
func (l *fakeLedger) seatInvariant(t *testing.T) {
	t.Helper()
	counts := map[uint64]int{}
	for _, b := range l.bookings {
		counts[b.FlightID]++
	}
	for id, f := range l.flights {
		assert.Equal(t, l.capacity[id]-counts[id], f.SeatsAvailable, "flight %d seat counter", id)
		assert.GreaterOrEqual(t, f.SeatsAvailable, 0, "flight %d seat counter negative", id)
	}
}

// flightStoreOnly adapts fakeLedger to FlightStore (its booking Create
// would otherwise collide with the flight Create signature).
type flightStoreOnly struct{ l *fakeLedger }

func (s flightStoreOnly) Create(ctx context.Context, f *model.Flight) error { return nil }
func (s flightStoreOnly) List(ctx context.Context) ([]model.Flight, error)  { return s.l.List(ctx) }
func (s flightStoreOnly) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	return s.l.GetByID(ctx, id)
}

// TestBookingHandler_LastSeatSequence walks the canonical last-seat
// story: user A books the last seat, user B finds it sold out, and A's
// repeat attempt reports the duplicate rather than the sellout.
func TestBookingHandler_LastSeatSequence(t *testing.T) {
	capturePublish(t)

	ledger := newFakeLedger()
	ledger.addFlight(model.Flight{
		ID: 1, FlightNumber: "AI101", Departure: "Chennai", Arrival: "Delhi",
		DepartureTime: time.Now().UTC(), Price: 5000, SeatsAvailable: 1,
	})
	h := NewBookingHandler(ledger, flightStoreOnly{ledger})

	// Account A books the last seat.
	c, rec := bookRequest(100, 1)
	assert.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	ledger.seatInvariant(t)

	f, _ := ledger.GetByID(context.Background(), 1)
	assert.Equal(t, 0, f.SeatsAvailable)
	assert.Len(t, ledger.bookings, 1)

	// Account B is sold out; the counter stays at zero.
	c, rec = bookRequest(200, 1)
	assert.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no seats available")
	ledger.seatInvariant(t)

	// Account A again: the duplicate wins over the sellout.
	c, rec = bookRequest(100, 1)
	assert.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already booked")
	ledger.seatInvariant(t)

	// Only A sees a booking, joined with its flight.
	c, rec = func() (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", float64(100))
		return c, rec
	}()
	assert.NoError(t, h.MyBookings(c))
	var mine []model.BookingDetail
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)
	assert.Equal(t, "AI101", mine[0].FlightNumber)
}
