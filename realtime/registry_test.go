package realtime

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeConn records writes, deadlines and close calls so registry behavior is
// observable without a real websocket.
type fakeConn struct {
	mu        sync.Mutex
	writes    []interface{}
	deadlines []time.Time
	writeErr  error
	closed    bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, v)
	return nil
}

func (f *fakeConn) SetWriteDeadline(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadlines = append(f.deadlines, t)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// stalledConn blocks inside WriteJSON until released, like a peer whose TCP
// buffer is full.
type stalledConn struct {
	release chan struct{}
	entered chan struct{}
}

func newStalledConn() *stalledConn {
	return &stalledConn{
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
}

func (s *stalledConn) WriteJSON(v interface{}) error {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	<-s.release
	return nil
}

func (s *stalledConn) SetWriteDeadline(t time.Time) error { return nil }

func (s *stalledConn) Close() error { return nil }

func TestRegisterEvictsPreviousConnection(t *testing.T) {
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	registry.Register(7, first)
	registry.Register(7, second)

	assert.True(t, first.closed)
	assert.False(t, second.closed)
	assert.Equal(t, 1, registry.Count())

	// Delivery lands on the surviving connection.
	assert.True(t, registry.Deliver(7, "hello"))
	assert.Empty(t, first.writes)
	assert.Equal(t, []interface{}{"hello"}, second.writes)
}

func TestDeliverToOfflineUser(t *testing.T) {
	registry := NewRegistry()
	assert.False(t, registry.Deliver(42, "anyone there"))
}

func TestDeliverFailureUnregistersConnection(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{writeErr: errors.New("broken pipe")}
	registry.Register(7, conn)

	assert.False(t, registry.Deliver(7, "payload"))
	assert.True(t, conn.closed)
	assert.Equal(t, 0, registry.Count())

	// The user now counts as offline.
	assert.False(t, registry.Deliver(7, "again"))
}

func TestDropOnlyRemovesCurrentConnection(t *testing.T) {
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	registry.Register(7, first)
	registry.Register(7, second)

	// The evicted connection's teardown must not remove its replacement.
	registry.Drop(7, first)
	assert.Equal(t, 1, registry.Count())
	assert.True(t, registry.Deliver(7, "still here"))

	registry.Drop(7, second)
	assert.Equal(t, 0, registry.Count())
}

func TestUnregisterIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}
	registry.Register(7, conn)

	registry.Unregister(7)
	registry.Unregister(7)
	assert.Equal(t, 0, registry.Count())
}

func TestDeliverSetsWriteDeadline(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}
	registry.Register(7, conn)

	before := time.Now()
	assert.True(t, registry.Deliver(7, "hi"))
	assert.Len(t, conn.deadlines, 1)
	assert.True(t, conn.deadlines[0].After(before))
}

func TestStalledConnectionDoesNotBlockOtherDeliveries(t *testing.T) {
	registry := NewRegistry()
	stalled := newStalledConn()
	healthy := &fakeConn{}

	registry.Register(1, stalled)
	registry.Register(2, healthy)

	go registry.Deliver(1, "slow")
	<-stalled.entered
	defer close(stalled.release)

	done := make(chan bool, 1)
	go func() {
		done <- registry.Deliver(2, "fast")
	}()

	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("delivery to a healthy connection blocked behind a stalled peer")
	}

	// Registry bookkeeping stays responsive while the write is in flight.
	assert.Equal(t, 2, registry.Count())
	assert.Equal(t, []interface{}{"fast"}, healthy.writes)
}
