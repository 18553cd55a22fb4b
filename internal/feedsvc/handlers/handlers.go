package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avvvet/giftcard-services/internal/feedsvc/ws"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Authenticator resolves a bearer token to the admin email.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

type Handler struct {
	upgrader websocket.Upgrader
	ws       *ws.Ws
	auth     Authenticator
}

func NewHandler(s *ws.Ws, auth Authenticator) *Handler {
	h := &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ws:   s,
		auth: auth,
	}
	return h
}

// HandleLive upgrades an authenticated admin to the record event feed.
// Browsers cannot set headers on a websocket handshake, so the token is
// also accepted as ?jwt=.
func (h *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	tok := jwtauth.TokenFromQuery(r)
	if tok == "" {
		tok = jwtauth.TokenFromHeader(r)
	}

	email, err := h.auth.Authenticate(tok)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	socketId := uuid.New().String()
	h.ws.StoreConnection(socketId, conn)

	log.Infof("live feed connection %s opened by %s", socketId, email)

	go h.handleConnection(conn, socketId)
}

// handleConnection drains the socket until the client goes away. The
// feed is one-way, anything the client sends is ignored.
func (h *Handler) handleConnection(conn *websocket.Conn, socketId string) {
	defer func() {
		log.Infof("Closing WebSocket connection: %s", socketId)
		h.ws.HandleDisconnect(socketId)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("WebSocket unexpected close error for socket %s: %v", socketId, err)
			}
			return
		}
	}
}
