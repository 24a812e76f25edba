// Package signal is the WebSocket adapter: it turns transport frames into
// coordinator operations and delivers the resulting outbound events.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/arlet/classroom/internal/app"
	"github.com/arlet/classroom/internal/config"
	"github.com/arlet/classroom/internal/core"
	"github.com/arlet/classroom/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	coord   *app.Coordinator
	cfg     *config.Config
	limiter *ClaimRateLimiter

	connsMu sync.RWMutex
	conns   map[domain.ConnID]*wsConn

	// dispatchMu serializes (coordinator call + fan-out) so every connection
	// observes state changes in the same order.
	dispatchMu sync.Mutex
}

func NewController(coord *app.Coordinator, cfg *config.Config) *Controller {
	return &Controller{
		coord:   coord,
		cfg:     cfg,
		limiter: NewClaimRateLimiter(claimLimit, claimWindow),
		conns:   make(map[domain.ConnID]*wsConn),
	}
}

type wsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleWS upgrades the request and runs the connection until it drops.
// Every connection gets a fresh id; the client token only ties reconnects
// together in the logs.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	sid := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(sid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan []byte, ctl.cfg.SendBuffer),
	}
	ctl.connsMu.Lock()
	ctl.conns[sid] = conn
	ctl.connsMu.Unlock()

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}

// drop runs the disconnect transition exactly once per connection and then
// tears the transport down.
func (ctl *Controller) drop(sid domain.ConnID, conn *wsConn) {
	ctl.dispatch(func() []core.Outbound {
		return ctl.coord.Disconnect(sid)
	})
	ctl.connsMu.Lock()
	delete(ctl.conns, sid)
	ctl.connsMu.Unlock()
	ctl.limiter.Forget(sid)
	conn.Close()
}
