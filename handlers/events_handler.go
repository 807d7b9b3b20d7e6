package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ferreirogomes/tickmint/events"
)

// EventsHandler streams admission events to websocket subscribers.
type EventsHandler struct {
	Emitter  *events.Emitter
	upgrader websocket.Upgrader
}

func NewEventsHandler(emitter *events.Emitter) *EventsHandler {
	return &EventsHandler{
		Emitter: emitter,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream upgrades the connection and relays admission events until the
// client goes away. A subscriber that cannot keep up misses events rather
// than stalling admissions.
// GET /events/ws
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	sub, cancel := h.Emitter.Subscribe()
	defer cancel()

	// Drain reads so close frames are processed; any read error means the
	// client is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				slog.Debug("websocket subscriber dropped", "err", err)
				return
			}
		case <-done:
			return
		}
	}
}
