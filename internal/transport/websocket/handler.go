package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/service/game"
	"github.com/iamasit07/connect4-agents/backend/pkg/auth"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	JWTSecret      string
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// originChecker allows requests without an Origin header and listed origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		log.Printf("[WS] Rejected origin %s", origin)
		return false
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// 1. Wait for initialization with the game token
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.Token == "" {
		log.Printf("[WS] Missing initialization or token")
		conn.WriteJSON(domain.ServerMessage{Type: "error", Message: "First message must be init with a game token"})
		conn.Close()
		return
	}

	claims, err := auth.ValidateGameToken(h.JWTSecret, message.Token)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(domain.ServerMessage{Type: "error", Message: "Invalid or expired game token"})
		conn.Close()
		return
	}
	color, err := domain.ParseColor(claims.Color)
	if err != nil {
		conn.WriteJSON(domain.ServerMessage{Type: "error", Message: "Invalid seat in game token"})
		conn.Close()
		return
	}

	session, exists := h.SessionManager.GetSessionByGameID(claims.GameID)
	if !exists {
		conn.WriteJSON(domain.ServerMessage{Type: "error", Message: "Game not found"})
		conn.Close()
		return
	}

	gameID := claims.GameID
	h.ConnManager.AddConnection(gameID, conn)
	log.Printf("[WS] Connection initialized for game %s (%s)", gameID, color)

	done := make(chan struct{})
	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for game %s", gameID)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := h.ConnManager.writePing(gameID, conn); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, State: session.Snapshot()})

	// 2. Main message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Player disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: "Invalid message format"})
			continue
		}

		h.processMessage(session, color, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(session *game.GameSession, color domain.Color, msg domain.ClientMessage) {
	var err error
	switch msg.Type {
	case "make_move":
		err = session.HandleMove(color, msg.Column, h.ConnManager)
	case "resign":
		err = session.Resign(color, h.ConnManager)
	case "get_state":
		err = h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{Type: "game_state", GameID: session.GameID, State: session.Snapshot()})
	default:
		log.Printf("[WS] Unknown message type: %s", msg.Type)
		h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{Type: "error", Message: "Unknown message type"})
		return
	}

	if err != nil {
		h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{Type: "error", GameID: session.GameID, Message: err.Error()})
	}
}
