package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type searchRequest struct {
	PassengerName string `json:"passenger_name" binding:"required"`
	Birthdate     string `json:"birthdate" binding:"required"`
	TravelClass   int    `json:"travel_class" binding:"required"`
	Passport      string `json:"passport" binding:"required"`
	From          string `json:"from" binding:"required"`
	To            string `json:"to"`
	DepDate       string `json:"dep_date" binding:"required"`
	DepTime       string `json:"dep_time" binding:"required"`
}

type bestPriceRequest struct {
	TravelClass int    `json:"travel_class" binding:"required"`
	From        string `json:"from" binding:"required"`
	DepDate     string `json:"dep_date" binding:"required"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/search", h.search)
	router.POST("/search/best", h.best)
	router.GET("/flights/:id", h.get)
	router.GET("/occupancy", h.occupancy)
	router.GET("/airlines/stats", h.stats)
}

func (h *FlightHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.Search(c.Request.Context(), flights.SearchInput{
		PassengerName: req.PassengerName,
		Birthdate:     req.Birthdate,
		TravelClass:   req.TravelClass,
		Passport:      req.Passport,
		From:          req.From,
		To:            req.To,
		DepDate:       req.DepDate,
		DepTime:       req.DepTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) best(c *gin.Context) {
	var req bestPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.BestPrice(c.Request.Context(), flights.BestPriceInput{
		TravelClass: req.TravelClass,
		From:        req.From,
		DepDate:     req.DepDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetFlight(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) occupancy(c *gin.Context) {
	ids := c.QueryArray("flight_id")
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "at least one flight_id is required"})
		return
	}

	occupancy, err := h.service.Occupancy(c.Request.Context(), ids)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, occupancy)
}

func (h *FlightHandler) stats(c *gin.Context) {
	stats, err := h.service.AirlineStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
