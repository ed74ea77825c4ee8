package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/debtledger/backend/internal/infrastructure/event"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventsHandler streams domain events to clients over SSE
type EventsHandler struct {
	BaseHandler
	broadcaster *event.Broadcaster
	heartbeat   time.Duration
	logger      *zap.Logger
}

// NewEventsHandler creates a new SSE events handler. heartbeat is the
// interval between keep-alive messages on idle connections.
func NewEventsHandler(broadcaster *event.Broadcaster, heartbeat time.Duration, logger *zap.Logger) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &EventsHandler{
		broadcaster: broadcaster,
		heartbeat:   heartbeat,
		logger:      logger,
	}
}

// Stream opens an SSE connection and relays published domain events
// until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	subscriberID, messages, err := h.broadcaster.Subscribe()
	if err != nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "STREAM_LIMIT", "Too many active event streams")
		return
	}
	defer h.broadcaster.Unsubscribe(subscriberID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	h.logger.Info("Event stream connected",
		zap.String("subscriber_id", subscriberID.String()),
		zap.String("user_id", actor.ID.String()))

	h.sendEvent(c.Writer, "connected",
		fmt.Sprintf(`{"subscriberId":"%s","timestamp":%d}`, subscriberID, time.Now().Unix()))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	reqCtx := c.Request.Context()
	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("Event stream disconnected",
				zap.String("subscriber_id", subscriberID.String()))
			return
		case <-ticker.C:
			h.sendEvent(c.Writer, "heartbeat",
				fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()))
			c.Writer.Flush()
		case msg, open := <-messages:
			if !open {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("Failed to marshal stream message", zap.Error(err))
				continue
			}
			h.sendEvent(c.Writer, msg.Type, string(data))
			c.Writer.Flush()
		}
	}
}

func (h *EventsHandler) sendEvent(w io.Writer, eventName, data string) {
	fmt.Fprintf(w, "event: %s\n", eventName)
	fmt.Fprintf(w, "data: %s\n\n", data)
}
