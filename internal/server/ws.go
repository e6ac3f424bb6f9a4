package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tokenbrain/internal/analyzer"
	"tokenbrain/internal/observability"
	"tokenbrain/internal/tokendata"
)

const (
	wsWriteTimeout   = 10 * time.Second
	wsPongTimeout    = 60 * time.Second
	wsPingInterval   = 30 * time.Second
	wsMaxMessageSize = 4096

	// Per-message analysis budget so a slow provider cannot hold the
	// read loop forever.
	wsAnalyzeTimeout = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The chat endpoint is public; origin checks belong to the deployment
	// proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSRequest is one inbound chat message.
type WSRequest struct {
	Type    string `json:"type"` // "analyze"
	Address string `json:"address"`
}

// WSResponse is one outbound chat message.
type WSResponse struct {
	Type    string           `json:"type"` // "analysis" | "error"
	Address string           `json:"address,omitempty"`
	Report  *analyzer.Report `json:"report,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// wsSession serializes writes to one connection. Gorilla connections allow
// only one concurrent writer, and the ping goroutine writes alongside the
// read loop's responses.
type wsSession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (sess *wsSession) writeJSON(v any) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	sess.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return sess.conn.WriteJSON(v)
}

func (sess *wsSession) ping() error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	sess.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return sess.conn.WriteMessage(websocket.PingMessage, nil)
}

// handleWS upgrades the connection and serves a chat-style analyze loop:
// the client sends addresses, the server replies with full reports.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade failed: %v", err)
		return
	}

	observability.WSSessionOpened()
	defer observability.WSSessionClosed()
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		return nil
	})

	sess := &wsSession{conn: conn}

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(sess, done)

	for {
		var req WSRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Printf("websocket read error: %v", err)
			}
			return
		}
		observability.RecordWSMessage("in")

		resp := s.serveWSRequest(r.Context(), req)
		if err := sess.writeJSON(resp); err != nil {
			s.logger.Printf("websocket write error: %v", err)
			return
		}
		observability.RecordWSMessage("out")
	}
}

// serveWSRequest handles one chat message and always produces a reply.
func (s *Server) serveWSRequest(ctx context.Context, req WSRequest) WSResponse {
	if req.Type != "analyze" {
		return WSResponse{Type: "error", Error: "unknown message type, expected \"analyze\""}
	}

	ctx, cancel := context.WithTimeout(ctx, wsAnalyzeTimeout)
	defer cancel()

	report, err := s.service.Analyze(ctx, req.Address)
	if err != nil {
		return WSResponse{
			Type:    "error",
			Address: req.Address,
			Error:   wsErrorMessage(err),
		}
	}

	return WSResponse{
		Type:    "analysis",
		Address: req.Address,
		Report:  report,
	}
}

func wsErrorMessage(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrInvalidAddress):
		return "invalid token address"
	case errors.Is(err, tokendata.ErrNotFound):
		return "token not found"
	case errors.Is(err, tokendata.ErrUnavailable):
		return "token data source unavailable, try again later"
	default:
		return "internal error"
	}
}

// pingLoop keeps the connection alive until the read loop exits.
func (s *Server) pingLoop(sess *wsSession, done <-chan struct{}) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := sess.ping(); err != nil {
				return
			}
		}
	}
}
