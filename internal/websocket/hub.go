package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"customer-insight-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "review_feed"

// Hub fans review events out to every reviewer watching a customer. With
// redis configured, events are also relayed to the other API instances.
type Hub struct {
	// Watchers per customer (several RMs, several tabs)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

type clusterMessage struct {
	CustomerId string          `json:"customer_id"`
	Origin     string          `json:"origin"`
	Message    json.RawMessage `json:"message"`
}

// instanceId tags relayed messages so an instance skips its own echoes.
var instanceId = uuid.NewString()

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.CustomerId] = append(h.clients[client.CustomerId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Reviewer subscribed", map[string]interface{}{"customer_id": client.CustomerId})

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.CustomerId]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.CustomerId] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.CustomerId]) == 0 {
		delete(h.clients, client.CustomerId)
		h.logger.Info("Hub", "Last reviewer left", map[string]interface{}{"customer_id": client.CustomerId})
	}
}

// SendToCustomer delivers a review event to local watchers of customerId and
// relays it to the cluster.
func (h *Hub) SendToCustomer(customerId uuid.UUID, event map[string]interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "review_event",
		"data": event,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode review event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(customerId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{
			CustomerId: customerId.String(),
			Origin:     instanceId,
			Message:    data,
		})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to relay review event", map[string]interface{}{"error": err.Error()})
		}
	}
}

// WatcherCount reports how many local connections watch customerId.
func (h *Hub) WatcherCount(customerId uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[customerId])
}

func (h *Hub) deliverLocal(customerId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[customerId]...)
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"customer_id": customerId})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == instanceId {
			continue
		}
		customerId, err := uuid.Parse(payload.CustomerId)
		if err != nil {
			continue
		}
		h.deliverLocal(customerId, payload.Message)
	}
}
