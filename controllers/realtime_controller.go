package controllers

import (
	"net/http"
	"time"

	"github.com/mpefaur/plant-vs-water/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// realtimeHub is shared by the websocket endpoint and the watering
// controller, which publishes a notice for each recorded watering.
var realtimeHub = services.NewRealtimeHub()

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// WateringsWS upgrades the connection and streams the user's watering
// notices until the client disconnects.
func WateringsWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	realtimeHub.Register(cl)

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				realtimeHub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			realtimeHub.Unregister(cl)
			return
		}
	}
}
