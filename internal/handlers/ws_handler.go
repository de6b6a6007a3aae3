package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/yoonsu-park/community-board/internal/realtime"
	jwtutil "github.com/yoonsu-park/community-board/pkg/jwt"
	"github.com/yoonsu-park/community-board/pkg/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler authenticates the handshake of the persistent push connection
// and binds it to its owning user. Only the handshake is examined; frames
// on an established connection are drained and ignored.
type WSHandler struct {
	Hub       *realtime.Hub
	Registry  *jwtutil.RevocationRegistry
	JWTSecret string
}

func NewWSHandler(hub *realtime.Hub, registry *jwtutil.RevocationRegistry, jwtSecret string) *WSHandler {
	return &WSHandler{
		Hub:       hub,
		Registry:  registry,
		JWTSecret: jwtSecret,
	}
}

// ConnectHandler serves GET /ws/notifications. Any handshake failure drops
// the connection without a response body; the reason is logged server-side
// only, never disclosed to the caller.
func (h *WSHandler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearerToken(r)
	if token == "" {
		// Browsers cannot set headers on websocket dials.
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		log.Debug("Websocket handshake without token, dropping")
		return
	}

	claims, err := jwtutil.ParseToken(token, h.JWTSecret)
	if err != nil {
		log.WithError(err).Debug("Websocket handshake token rejected, dropping")
		return
	}
	if h.Registry.IsRevoked(token) {
		log.WithField("userID", claims.UserID).Debug("Websocket handshake with revoked token, dropping")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	userID := claims.UserID
	h.Hub.Register(userID, conn)

	defer func() {
		h.Hub.Unregister(userID, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
