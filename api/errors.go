package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// bookingFailedResponse is the view shown when the seat was taken first.
type bookingFailedResponse struct {
	Error  string `json:"error"`
	SeatID int64  `json:"seat_id"`
}

func writeError(c *gin.Context, err error) {
	var conflict *domain.BookingConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, bookingFailedResponse{Error: conflict.Error(), SeatID: conflict.SeatID})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
