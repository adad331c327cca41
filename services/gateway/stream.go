package gateway

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/httpx"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware on the router;
	// browsers do not send CORS preflights for websockets, so origin checks
	// here would only break non-browser clients.
	CheckOrigin: func(*http.Request) bool { return true },
}

// ServeStream upgrades an authenticated request to a streaming session.
// Unlike the request path, the handshake is strict: a missing, malformed,
// or expired credential rejects the connection before the upgrade.
//
// The token is read from the Authorization header or, for browser websocket
// clients that cannot set headers, from the token query parameter.
func (g *Gateway) ServeStream(w http.ResponseWriter, r *http.Request) {
	token := auth.BearerToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	subject, err := g.tokens.Verify(token)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		g.log.DebugContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	if _, err := g.sessions.Open(conn, subject); err != nil {
		g.log.WarnContext(r.Context(), "session rejected", "error", err)
	}
}
