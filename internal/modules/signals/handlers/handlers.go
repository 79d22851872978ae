// Package handlers provides the REST and WebSocket surface of the signal
// feed.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aegisops/aegis/internal/events"
	"github.com/aegisops/aegis/internal/modules/signals"
)

// Handler provides HTTP handlers for signal endpoints
type Handler struct {
	service *signals.Service
	bus     *events.Bus
	log     zerolog.Logger
}

// NewHandler creates a new signals handler
func NewHandler(service *signals.Service, bus *events.Bus, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		bus:     bus,
		log:     log.With().Str("handler", "signals").Logger(),
	}
}

// Routes mounts the signal endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleFeed)
	r.Get("/stream", h.HandleStream)
}

// HandleFeed handles GET /api/v1/signals
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.service.Feed())
}

// HandleStream handles GET /api/v1/signals/stream. The current feed is
// sent on connect, then again after every snapshot refresh until the
// client goes away.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	ctx := r.Context()

	// A refreshed snapshot just pokes the stream; the feed itself is
	// recomputed at send time. Buffer of one coalesces bursts.
	refreshed := make(chan struct{}, 1)
	unsubscribe := h.bus.Subscribe(events.TopicSnapshotRefreshed, func(any) {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if err := h.send(ctx, conn); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-refreshed:
			if err := h.send(ctx, conn); err != nil {
				h.log.Debug().Err(err).Msg("Signal stream write failed, closing")
				return
			}
		}
	}
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn) error {
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wsjson.Write(writeCtx, conn, h.service.Feed())
}
