package realtime

import (
	"log"
	"sync"
	"time"
)

// writeTimeout bounds a single frame write. A peer that stops reading runs
// out this deadline and surfaces as a failed delivery instead of a hang.
const writeTimeout = 10 * time.Second

// Conn is the slice of a websocket connection the registry needs. The gorilla
// *websocket.Conn satisfies it directly.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// client pairs a connection with its write mutex. The mutex serializes writes
// to the one connection, which is the single-writer guarantee gorilla
// requires, without stalling the registry map behind network I/O.
type client struct {
	mu   sync.Mutex
	conn Conn
}

// Registry maps a user id to their single live connection. It is constructed
// by the server and handed to whatever needs to deliver; it is not a package
// singleton, so tests can run independent registries side by side.
//
// The registry mutex guards only the map. Writes happen outside it, under the
// per-connection mutex, so one slow peer never blocks delivery to the rest.
type Registry struct {
	mu      sync.Mutex
	clients map[uint]*client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uint]*client)}
}

// Register installs conn as the user's live connection. An existing
// connection for the same user is closed and replaced; last registration
// wins, the loser is treated as a forced disconnect.
func (r *Registry) Register(userID uint, conn Conn) {
	r.mu.Lock()
	old, ok := r.clients[userID]
	r.clients[userID] = &client{conn: conn}
	r.mu.Unlock()

	if ok && old.conn != conn {
		log.Printf("realtime: evicting previous connection for user %d", userID)
		_ = old.conn.Close()
	}
}

// Unregister removes whatever connection the user has. Safe to call when none
// is registered.
func (r *Registry) Unregister(userID uint) {
	r.mu.Lock()
	delete(r.clients, userID)
	r.mu.Unlock()
}

// Drop removes the mapping only if conn is still the user's live connection.
// A connection that was already evicted by a reconnect must not tear down its
// replacement on the way out.
func (r *Registry) Drop(userID uint, conn Conn) {
	r.mu.Lock()
	if current, ok := r.clients[userID]; ok && current.conn == conn {
		delete(r.clients, userID)
	}
	r.mu.Unlock()
}

// Deliver pushes payload to the user's connection if one is registered.
// Returns false when the user is offline or the write fails; a failed or
// timed-out write also unregisters the dead connection. Neither case is an
// error to the caller, delivery is best effort.
func (r *Registry) Deliver(userID uint, payload interface{}) bool {
	r.mu.Lock()
	cl, ok := r.clients[userID]
	r.mu.Unlock()
	if !ok {
		return false
	}

	cl.mu.Lock()
	_ = cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := cl.conn.WriteJSON(payload)
	cl.mu.Unlock()
	if err != nil {
		log.Printf("realtime: write to user %d failed, dropping connection: %v", userID, err)
		r.mu.Lock()
		if current, ok := r.clients[userID]; ok && current == cl {
			delete(r.clients, userID)
		}
		r.mu.Unlock()
		_ = cl.conn.Close()
		return false
	}
	return true
}

// Count reports how many users are connected.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
