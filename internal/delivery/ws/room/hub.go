package ws_room

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mkhalturin/filmatch/core/internal/model"
)

const (
	EventMatchFound  = "MATCH_FOUND"
	EventNoConsensus = "NO_CONSENSUS"
	EventLobbyUpdate = "LOBBY_UPDATE"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	roomID uuid.UUID
	userID uuid.UUID
}

type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[*Client]bool
	logger *slog.Logger
}

type HubOption func(*Hub)

func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		rooms:  make(map[uuid.UUID]map[*Client]bool),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.roomID]; !ok {
		h.rooms[client.roomID] = make(map[*Client]bool)
	}
	h.rooms[client.roomID][client] = true

	h.logger.Info("client registered",
		slog.String("room_id", client.roomID.String()),
		slog.String("user_id", client.userID.String()))
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[client.roomID]; ok {
		if _, exists := room[client]; exists {
			delete(room, client)
			close(client.send)
		}
		if len(room) == 0 {
			delete(h.rooms, client.roomID)
		}
	}

	h.logger.Info("client unregistered", slog.String("room_id", client.roomID.String()))
}

func (h *Hub) broadcastToRoom(roomID uuid.UUID, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	raw, _ := json.Marshal(event)

	for client := range h.rooms[roomID] {
		select {
		case client.send <- raw:
		default:
			close(client.send)
			delete(h.rooms[roomID], client)
		}
	}
}

// PublishMatch pushes the match result to every connection in the room.
// Clients that dropped meanwhile just miss the event; the room state in
// storage stays the source of truth.
func (h *Hub) PublishMatch(_ context.Context, event model.MatchEvent) error {
	participants := make([]string, 0, len(event.Participants))
	for _, p := range event.Participants {
		participants = append(participants, p.String())
	}

	h.broadcastToRoom(event.RoomID, Event{
		Type: EventMatchFound,
		Payload: map[string]any{
			"room_id":      event.RoomID.String(),
			"item_id":      event.ItemID,
			"title":        event.Title,
			"participants": participants,
			"timestamp":    time.Now().Unix(),
		},
	})
	return nil
}

func (h *Hub) PublishNoConsensus(_ context.Context, roomID uuid.UUID) error {
	h.broadcastToRoom(roomID, Event{
		Type: EventNoConsensus,
		Payload: map[string]any{
			"room_id":   roomID.String(),
			"message":   "all participants voted through the pool without a match",
			"timestamp": time.Now().Unix(),
		},
	})
	return nil
}

func (h *Hub) NotifyLobbyUpdate(roomID uuid.UUID, memberCount int) {
	h.broadcastToRoom(roomID, Event{
		Type: EventLobbyUpdate,
		Payload: map[string]any{
			"room_id":      roomID.String(),
			"member_count": memberCount,
		},
	})
}

func (h *Hub) startClientReading(client *Client) {
	defer func() {
		h.unregister(client)
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) startClientWriting(client *Client) {
	defer client.conn.Close()

	for message := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
