package controllers

import (
	"foodmanager/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	Events *services.FoodEvents
}

func NewRealtimeController(events *services.FoodEvents) *RealtimeController {
	return &RealtimeController{Events: events}
}

// Origin is checked against Host by the default upgrader.
var upgrader = websocket.Upgrader{}

// GET /api/foods/events
func (rc *RealtimeController) FoodEventsWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewWSClient(conn)
	rc.Events.Register(cl)

	// read loop ends on client close/error; writes happen in the hub
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.Events.Unregister(cl)
			return
		}
	}
}
