// Package ws pushes cart and order notifications to browsers over WebSocket.
// Clients subscribe to one room, either a cart or an order; the hub routes
// each message to the room it belongs to.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

// Channel is the kind of room a client subscribes to.
type Channel string

const (
	CartChannel  Channel = "cart"
	OrderChannel Channel = "order"
)

// CartChangedType is the message type pushed to cart rooms.
const CartChangedType = "cart.changed"

const broadcastBuffer = 256

var (
	_ ports.CartNotifier           = (*Hub)(nil)
	_ ports.TrackingEventPublisher = (*Hub)(nil)
)

// Message is the envelope written to the socket.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type roomKey struct {
	channel Channel
	id      kernel.UUID
}

type roomMessage struct {
	room roomKey
	data []byte
}

type pendingCartChange struct {
	timer  *time.Timer
	change ports.CartChanged
}

// Hub keeps the rooms and their clients. Run must be running for messages to
// be delivered.
type Hub struct {
	rooms map[roomKey]map[*Client]bool
	mu    sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	done       chan struct{}

	debounce  time.Duration
	pending   map[kernel.UUID]*pendingCartChange
	pendingMu sync.Mutex

	logger *slog.Logger
}

// NewHub creates a hub. Cart notifications for the same cart arriving within
// debounce of each other are coalesced into the last one; zero disables it.
func NewHub(debounce time.Duration, logger *slog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[roomKey]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, broadcastBuffer),
		done:       make(chan struct{}),
		debounce:   debounce,
		pending:    make(map[kernel.UUID]*pendingCartChange),
		logger:     logger.With("component", "ws-hub"),
	}
}

// Run serves registrations and broadcasts until ctx is done. On exit every
// client is disconnected and pending notifications are dropped.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.room] == nil {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()
			metrics.WebSocketClients.WithLabelValues(string(client.room.channel)).Inc()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[msg.room] {
				select {
				case client.send <- msg.data:
				default:
					h.logger.Warn("Dropping slow client", "channel", msg.room.channel, "id", msg.room.id.String())
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// removeLocked detaches client and closes its send channel. h.mu must be held.
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	close(client.send)
	metrics.WebSocketClients.WithLabelValues(string(client.room.channel)).Dec()

	if len(clients) == 0 {
		delete(h.rooms, client.room)
		if client.room.channel == CartChannel {
			h.cancelPending(client.room.id)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	for room, clients := range h.rooms {
		for client := range clients {
			close(client.send)
			metrics.WebSocketClients.WithLabelValues(string(room.channel)).Dec()
		}
		delete(h.rooms, room)
	}
	h.mu.Unlock()

	h.pendingMu.Lock()
	for cartID, p := range h.pending {
		p.timer.Stop()
		delete(h.pending, cartID)
	}
	h.pendingMu.Unlock()
}

func (h *Hub) hasRoom(room roomKey) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room]) > 0
}

// NotifyCartChanged pushes a cart.changed message to the cart's room. Nothing
// is scheduled for carts nobody watches.
func (h *Hub) NotifyCartChanged(ctx context.Context, change ports.CartChanged) {
	room := roomKey{channel: CartChannel, id: change.CartID}
	if !h.hasRoom(room) {
		return
	}
	if h.debounce <= 0 {
		h.sendCartChanged(ctx, change)
		return
	}

	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()

	if p, ok := h.pending[change.CartID]; ok && p.timer.Stop() {
		p.change = change
		p.timer.Reset(h.debounce)
		return
	}

	p := &pendingCartChange{change: change}
	p.timer = time.AfterFunc(h.debounce, func() {
		h.pendingMu.Lock()
		if h.pending[change.CartID] != p {
			h.pendingMu.Unlock()
			return
		}
		delete(h.pending, change.CartID)
		latest := p.change
		h.pendingMu.Unlock()

		h.sendCartChanged(context.Background(), latest)
	})
	h.pending[change.CartID] = p
}

func (h *Hub) cancelPending(cartID kernel.UUID) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()

	if p, ok := h.pending[cartID]; ok {
		p.timer.Stop()
		delete(h.pending, cartID)
	}
}

type cartChangedPayload struct {
	CartID    string `json:"cartId"`
	Version   uint64 `json:"version"`
	ItemCount int    `json:"itemCount"`
}

func (h *Hub) sendCartChanged(ctx context.Context, change ports.CartChanged) {
	payload := cartChangedPayload{
		CartID:    change.CartID.String(),
		Version:   change.Version,
		ItemCount: change.ItemCount,
	}
	room := roomKey{channel: CartChannel, id: change.CartID}
	if err := h.send(ctx, room, CartChangedType, payload); err != nil {
		h.logger.WarnContext(ctx, "Failed to push cart change", "cartId", payload.CartID, "error", err)
	}
}

type trackingPayload struct {
	OrderID         string    `json:"orderId"`
	StageIndex      int       `json:"stageIndex"`
	StageName       string    `json:"stageName"`
	ProgressPercent int       `json:"progressPercent"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Publish pushes tracking events to the rooms of their orders.
func (h *Hub) Publish(ctx context.Context, events ...tracking.Event) error {
	for _, e := range events {
		room := roomKey{channel: OrderChannel, id: e.OrderID}
		if !h.hasRoom(room) {
			continue
		}
		payload := trackingPayload{
			OrderID:         e.OrderID.String(),
			StageIndex:      e.StageIndex,
			StageName:       e.StageName,
			ProgressPercent: e.ProgressPercent,
			Status:          e.Status.String(),
			OccurredAt:      e.OccurredAt,
		}
		if err := h.send(ctx, room, string(e.Type), payload); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hub) send(ctx context.Context, room roomKey, msgType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Message{Type: msgType, Payload: raw})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- roomMessage{room: room, data: data}:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
