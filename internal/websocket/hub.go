package websocket

import (
	"encoding/json"
	"sync"
)

// WalletUpdate is pushed to every connected client of a group whenever a
// ledger write changes the group's cash position.
type WalletUpdate struct {
	Balance int64 `json:"wallet_balance"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(groupID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[groupID] == nil {
		h.clients[groupID] = make(map[*Client]struct{})
	}
	h.clients[groupID][client] = struct{}{}
}

func (h *Hub) Unregister(groupID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[groupID] == nil {
		return
	}
	delete(h.clients[groupID], client)
	if len(h.clients[groupID]) == 0 {
		delete(h.clients, groupID)
	}
}

func (h *Hub) BroadcastWallet(groupID string, update WalletUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[groupID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
