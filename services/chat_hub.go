package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	Identity string
	Conn     *websocket.Conn
}

// ChatHub fans assistant replies out to every socket an identity has open,
// so a reply triggered in one tab shows up in all of them.
type ChatHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewChatHub() *ChatHub {
	return &ChatHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *ChatHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.Identity] == nil {
		h.clients[c.Identity] = make(map[*WSClient]struct{})
	}
	h.clients[c.Identity][c] = struct{}{}
	h.mu.Unlock()
}

func (h *ChatHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.Identity]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.Identity)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *ChatHub) Push(identity string, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[identity] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
