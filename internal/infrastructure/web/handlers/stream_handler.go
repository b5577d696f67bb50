package handlers

import (
	"aetherium-service/internal/application/dto"
	"aetherium-service/internal/application/services"
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	DefaultStreamInterval     = 5 * time.Minute
	DefaultStreamPingInterval = 30 * time.Second
	DefaultStreamWriteTimeout = 10 * time.Second

	streamReadLimit = 1024
)

// StreamOptions configures the listings websocket
type StreamOptions struct {
	Interval       time.Duration
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StreamHandler pushes the listings payload over a websocket: once on connect
// and then every Interval until the client goes away.
type StreamHandler struct {
	market   interfaces.MarketService
	opts     StreamOptions
	upgrader websocket.Upgrader

	base     context.Context
	shutdown context.CancelFunc
}

func NewStreamHandler(market interfaces.MarketService, opts StreamOptions) *StreamHandler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultStreamInterval
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultStreamPingInterval
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultStreamWriteTimeout
	}

	h := &StreamHandler{market: market, opts: opts}
	h.base, h.shutdown = context.WithCancel(context.Background())
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Shutdown closes every open stream with a normal closure
func (h *StreamHandler) Shutdown() {
	h.shutdown()
}

// checkOrigin acepta clientes sin Origin (no navegador) y los orígenes configurados
func (h *StreamHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Stream godoc
// @Summary Live listings stream
// @Description Upgrades to a WebSocket and pushes the listings payload immediately and then periodically. Each message is a dto.StreamMessage.
// @Tags crypto
// @Param convert query string false "Target currency" default(GBP)
// @Success 101 {object} dto.StreamMessage
// @Router /api/crypto/stream [get]
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	convert := services.NormalizeConvert(r.URL.Query().Get("convert"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió al cliente
		logging.WarnWithError(r.Context(), "WebSocket upgrade failed", err, logging.Fields{
			logging.FieldHTTPPath: r.URL.Path,
		})
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	metrics.StreamClientConnected()
	defer metrics.StreamClientDisconnected()

	ctx, cancel := context.WithCancel(logging.WithRequestID(h.base, logging.GetRequestID(r.Context())))
	defer cancel()

	logging.Info(ctx, "Stream client connected", logging.Fields{
		logging.FieldConvert:      convert,
		logging.FieldHTTPRemoteIP: r.RemoteAddr,
	})

	go h.readLoop(conn, cancel)
	h.writeLoop(ctx, conn, convert)

	logging.Info(ctx, "Stream client disconnected", logging.Fields{
		logging.FieldConvert: convert,
	})
}

// readLoop descarta mensajes del cliente y mantiene vivo el read deadline con los pong
func (h *StreamHandler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	deadline := 2 * h.opts.PingInterval
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(deadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(deadline))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) writeLoop(ctx context.Context, conn *websocket.Conn, convert string) {
	pushTicker := time.NewTicker(h.opts.Interval)
	defer pushTicker.Stop()
	pingTicker := time.NewTicker(h.opts.PingInterval)
	defer pingTicker.Stop()

	if err := h.push(ctx, conn, convert); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(h.opts.WriteTimeout))
			return
		case <-pushTicker.C:
			if err := h.push(ctx, conn, convert); err != nil {
				return
			}
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.opts.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

// push sends one listings message. Upstream failures are sent as an error
// message and keep the stream open; only write failures end it.
func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, convert string) error {
	msg := dto.StreamMessage{
		Type:    "listings",
		Convert: convert,
		SentAt:  time.Now().UTC(),
	}

	body, err := h.market.Listings(ctx, convert)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.WarnWithError(ctx, "Stream listings fetch failed", err, logging.Fields{
			logging.FieldConvert: convert,
		})
		msg.Type = "error"
		msg.Error = listingsErrors.message(err)
	} else {
		msg.Data = json.RawMessage(body)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		metrics.RecordStreamPush(false)
		logging.Debug(ctx, "Stream write failed", logging.Fields{"error": err.Error()})
		return err
	}
	metrics.RecordStreamPush(msg.Type == "listings")
	return nil
}
