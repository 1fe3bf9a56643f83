package live

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// upgrader performs the WebSocket handshake. Origin checking is left to the
// surrounding router's middleware; a grid feed carries no credentials.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler returns the HTTP handler that upgrades connections and attaches
// them to the view as sessions.
func (v *View) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			v.logger.Error("upgrade failed", "error", err, "remote", r.RemoteAddr)
			return
		}

		session := newSession(v, conn)
		v.register(session)

		go session.writeLoop()
		go session.readLoop()
	})
}

// Mount attaches the view's WebSocket endpoint to a chi router.
func Mount(r chi.Router, path string, v *View) {
	r.Handle(path, v.Handler())
}
