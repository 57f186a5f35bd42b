package core

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const reloadMessage = "reload"

type LiveReloaderInterface interface {
	BroadcastReload()
	Handler(http.ResponseWriter, *http.Request)
}

// LiveReloader keeps the open browser tabs of a dev session and tells them
// to refresh when something under the public dir changes.
type LiveReloader struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

var NewLiveReloader = func() LiveReloaderInterface {
	return &LiveReloader{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// dev only; pages are served from the same host
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (lr *LiveReloader) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := lr.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	lr.mu.Lock()
	lr.clients[conn] = struct{}{}
	lr.mu.Unlock()

	go lr.drain(conn)
}

// drain discards client frames until the socket closes, then forgets it.
func (lr *LiveReloader) drain(conn *websocket.Conn) {
	defer lr.remove(conn)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (lr *LiveReloader) remove(conn *websocket.Conn) {
	lr.mu.Lock()
	delete(lr.clients, conn)
	lr.mu.Unlock()
	conn.Close()
}

func (lr *LiveReloader) BroadcastReload() {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	for conn := range lr.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
			conn.Close()
			delete(lr.clients, conn)
		}
	}
}

func (lr *LiveReloader) ClientCount() int {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return len(lr.clients)
}
