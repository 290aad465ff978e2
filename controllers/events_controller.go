package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/wyllersu/ai-fleet-mate/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventsController struct {
	hub *realtime.Hub
}

func NewEventsController(hub *realtime.Hub) *EventsController {
	return &EventsController{hub: hub}
}

// Stream handles GET /api/v1/events. It upgrades the connection and
// pushes change events until the client goes away. The subscription is
// released unconditionally on teardown.
func (ec *EventsController) Stream(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}
	defer ws.Close()

	events := ec.hub.Subscribe()
	defer ec.hub.Unsubscribe(events)

	// Reads are discarded; their only purpose is detecting disconnect.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := ws.WriteJSON(event); err != nil {
				log.Printf("Websocket client disconnected: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
