package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, input flights.SearchInput) (*flights.SearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.SearchResult), args.Error(1)
}

func (m *MockFlightUseCase) BestPrice(ctx context.Context, input flights.BestPriceInput) (*flights.SearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.SearchResult), args.Error(1)
}

func (m *MockFlightUseCase) Occupancy(ctx context.Context, ids []string) (map[string]float64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockFlightUseCase) GetFlight(ctx context.Context, id string) (*domain.FlightDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetails), args.Error(1)
}

func (m *MockFlightUseCase) AirlineStats(ctx context.Context) ([]domain.AirlineStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AirlineStats), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Book(ctx context.Context, seatID, personID int64) (*domain.BoardingPass, error) {
	args := m.Called(ctx, seatID, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardingPass), args.Error(1)
}

func (m *MockBookingUseCase) BoardingPass(ctx context.Context, seatID, personID int64) (*domain.BoardingPass, error) {
	args := m.Called(ctx, seatID, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardingPass), args.Error(1)
}

func (m *MockBookingUseCase) RepairOrphanedSeats(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type registrar interface {
	Register(router *gin.RouterGroup)
}

func newRouter(handlers ...registrar) http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api")
	for _, h := range handlers {
		h.Register(group)
	}
	return r
}
