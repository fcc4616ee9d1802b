package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the subset of *websocket.Conn the manager writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Manager tracks dashboard viewers subscribed to a device's live feed.
// Several tabs may watch the same device at once.
type Manager struct {
	mu          sync.RWMutex
	subscribers map[string]map[Conn]bool // deviceID -> open connections
}

func NewManager() *Manager {
	return &Manager{subscribers: make(map[string]map[Conn]bool)}
}

// Subscribe registers a viewer connection for a device.
func (m *Manager) Subscribe(deviceID string, conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subscribers[deviceID] == nil {
		m.subscribers[deviceID] = make(map[Conn]bool)
	}
	m.subscribers[deviceID][conn] = true
}

// Unsubscribe removes and closes a viewer connection.
func (m *Manager) Unsubscribe(deviceID string, conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conns, ok := m.subscribers[deviceID]; ok {
		if conns[conn] {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(m.subscribers, deviceID)
		}
	}
}

// Broadcast sends a text payload to every viewer of a device. Connections
// that fail to write are dropped.
func (m *Manager) Broadcast(deviceID string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.subscribers[deviceID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = conn.Close()
			delete(m.subscribers[deviceID], conn)
		}
	}
	if len(m.subscribers[deviceID]) == 0 {
		delete(m.subscribers, deviceID)
	}
}

// Subscribers returns the number of viewers for a device.
func (m *Manager) Subscribers(deviceID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers[deviceID])
}
