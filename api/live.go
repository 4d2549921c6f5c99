package api

import (
	"log"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type Subscriber interface {
	ServeWS(w http.ResponseWriter, r *http.Request, flightID string) error
}

// LiveHandler streams booking updates of one flight over a websocket.
type LiveHandler struct {
	flights flights.FlightUseCase
	hub     Subscriber
}

func NewLiveHandler(flights flights.FlightUseCase, hub Subscriber) *LiveHandler {
	return &LiveHandler{flights: flights, hub: hub}
}

func (h *LiveHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights/:id/ws", h.subscribe)
}

func (h *LiveHandler) subscribe(c *gin.Context) {
	flightID := c.Param("id")
	if _, err := h.flights.GetFlight(c.Request.Context(), flightID); err != nil {
		writeError(c, err)
		return
	}
	// On failure the upgrader has already answered the request.
	if err := h.hub.ServeWS(c.Writer, c.Request, flightID); err != nil {
		log.Printf("websocket upgrade for flight %s: %v", flightID, err)
	}
}
