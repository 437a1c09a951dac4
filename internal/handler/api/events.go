package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	resdto "escrow-market/internal/handler/dto/response"
	"escrow-market/internal/infra/eventbus"
	"escrow-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type EventsHandler struct {
	marketQueries queries.MarketQueries
	hub           *eventbus.Hub
}

func NewEventsHandler(marketQueries queries.MarketQueries, hub *eventbus.Hub) *EventsHandler {
	return &EventsHandler{
		marketQueries: marketQueries,
		hub:           hub,
	}
}

// @Summary List events
// @Description Page through the persisted event journal in sequence order
// @Tags events
// @Produce json
// @Param after query int false "Return events with seq greater than this" default(0)
// @Param limit query int false "Max events to return" default(100)
// @Success 200 {array} resdto.EventResponse
// @Router /market/events [get]
func (h *EventsHandler) ListEvents(c *gin.Context) {
	after, err := strconv.ParseInt(c.DefaultQuery("after", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid after parameter"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	events, err := h.marketQueries.ListEvents(c.Request.Context(), after, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	out := make([]*resdto.EventResponse, 0, len(events))
	for _, evt := range events {
		out = append(out, resdto.FromEvent(evt))
	}
	c.JSON(http.StatusOK, out)
}

// StreamEvents upgrades to a websocket and pushes every marketplace event as
// it happens. The connection is read-only from the client side.
//
// @Summary Stream events
// @Tags events
// @Router /market/events/ws [get]
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	events, cancel := h.hub.Subscribe()
	defer cancel()

	// Drain client frames so control messages keep flowing; any payload the
	// client sends is discarded.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				// dropped by the hub for falling behind
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscriber too slow"),
					time.Now().Add(wsWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(resdto.FromEvent(evt)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
