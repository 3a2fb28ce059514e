package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12 // 4 KB
	defaultInterval = 5 * time.Second
	maxInterval     = 60 * time.Second
)

// wsEnvelope wraps every message pushed to a WebSocket client.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsConnect upgrades the connection and streams activity snapshots on an
// interval chosen by the client (?interval_ms=, capped at 60s).
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine handles control frames and detects disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	snapshots := time.NewTicker(interval)
	defer snapshots.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	ctx := c.Request.Context()

	// Push one snapshot immediately so clients don't wait a full interval.
	if !h.writeSnapshot(ctx, conn) {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-snapshots.C:
			if !h.writeSnapshot(ctx, conn) {
				return
			}
		}
	}
}

// writeSnapshot sends one activity snapshot; false means the connection is
// no longer usable.
func (h *Handler) writeSnapshot(ctx context.Context, conn *websocket.Conn) bool {
	env := wsEnvelope{Type: "activity"}
	snap, err := h.services.Activity.Snapshot(ctx)
	if err != nil {
		env.Type = "error"
		env.Error = "failed to load activity"
		if h.log != nil {
			h.log.Errorw("ws_snapshot_failed", "err", err)
		}
	} else {
		env.Data = snap
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env) == nil
}

func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval
	if qs := c.Query("interval_ms"); qs != "" {
		if ms, err := strconv.Atoi(qs); err == nil && ms > 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}
	if interval > maxInterval {
		interval = maxInterval
	}
	return interval
}
