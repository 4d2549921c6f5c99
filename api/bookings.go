package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	SeatID   int64 `json:"seat_id" binding:"required"`
	PersonID int64 `json:"person_id" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/boarding-pass/:seat_id/:person_id", h.boardingPass)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	pass, err := h.service.Book(c.Request.Context(), req.SeatID, req.PersonID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pass)
}

func (h *BookingHandler) boardingPass(c *gin.Context) {
	seatID, err := strconv.ParseInt(c.Param("seat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid seat_id"})
		return
	}
	personID, err := strconv.ParseInt(c.Param("person_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid person_id"})
		return
	}

	pass, err := h.service.BoardingPass(c.Request.Context(), seatID, personID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pass)
}
