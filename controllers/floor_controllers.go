package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// FloorController streams floor events (seatings, bookings) to hosts.
type FloorController struct {
	Hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewFloorController(h *hub.Hub, origins []string) *FloorController {
	return &FloorController{
		Hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(origins),
		},
	}
}

// FloorHandler -> websocket endpoint, read-only for clients
func (fc *FloorController) FloorHandler(c *gin.Context) {
	ws, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Floor websocket upgrade failed: %v", err)
		return
	}

	fc.Hub.Register(ws)

	// Drain until the client goes away
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	fc.Hub.Unregister(ws)
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed["*"] || allowed[origin]
	}
}
