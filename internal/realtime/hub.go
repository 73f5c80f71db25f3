package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/synapsehq/synapse-backend/pkg/logger"
)

type eventBroker interface {
	Publish(ctx context.Context, channel string, payload any) error
	Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error)
}

// Subscription is a live client attachment to a project room. Events are
// dropped rather than blocking the fanout loop when the client falls behind.
type Subscription struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Events    chan Event
}

// Hub fans chat events out across API instances through redis pub/sub and
// delivers them to the connections attached to this process. The chat
// service publishes through it; Join, Leave, and NotifyTyping are the
// attach points for the socket gateway that terminates client
// connections outside this service.
type Hub struct {
	broker   eventBroker
	presence *Registry
	channel  string
	logg     *logger.Logger

	mu    sync.Mutex
	rooms map[uuid.UUID]map[*Subscription]struct{}
}

// NewHub builds a hub with the required dependencies. An empty channel falls
// back to EventChannel.
func NewHub(broker eventBroker, presence *Registry, channel string, logg *logger.Logger) (*Hub, error) {
	if broker == nil {
		return nil, fmt.Errorf("event broker required")
	}
	if presence == nil {
		presence = NewRegistry()
	}
	if channel == "" {
		channel = EventChannel
	}
	return &Hub{
		broker:   broker,
		presence: presence,
		channel:  channel,
		logg:     logg,
		rooms:    map[uuid.UUID]map[*Subscription]struct{}{},
	}, nil
}

// Presence exposes the registry backing this hub.
func (h *Hub) Presence() *Registry {
	return h.presence
}

// Publish pushes an event onto the shared channel. Every instance, this one
// included, picks it up through the subscription loop.
func (h *Hub) Publish(ctx context.Context, event Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := h.broker.Publish(ctx, h.channel, raw); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Join attaches a connection to a project room and announces the user if this
// is their first connection.
func (h *Hub) Join(ctx context.Context, projectID, userID uuid.UUID) (*Subscription, error) {
	sub := &Subscription{
		ProjectID: projectID,
		UserID:    userID,
		Events:    make(chan Event, 32),
	}

	h.mu.Lock()
	room, ok := h.rooms[projectID]
	if !ok {
		room = map[*Subscription]struct{}{}
		h.rooms[projectID] = room
	}
	room[sub] = struct{}{}
	h.mu.Unlock()

	if h.presence.Connect(projectID, userID) {
		if err := h.Publish(ctx, NewEvent(EventUserJoined, projectID, userID, nil)); err != nil {
			h.logError(ctx, "announce join", err)
		}
	}
	return sub, nil
}

// Leave detaches a connection and announces the departure once the user's
// last connection is gone.
func (h *Hub) Leave(ctx context.Context, sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	if room, ok := h.rooms[sub.ProjectID]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, sub.ProjectID)
		}
	}
	h.mu.Unlock()

	if h.presence.Disconnect(sub.ProjectID, sub.UserID) {
		if err := h.Publish(ctx, NewEvent(EventUserLeft, sub.ProjectID, sub.UserID, nil)); err != nil {
			h.logError(ctx, "announce leave", err)
		}
	}
}

// NotifyTyping broadcasts a typing indicator without persisting anything.
func (h *Hub) NotifyTyping(ctx context.Context, projectID, userID uuid.UUID) error {
	return h.Publish(ctx, NewEvent(EventUserTyping, projectID, userID, nil))
}

// Run consumes the shared channel and dispatches events to local rooms until
// the context is canceled.
func (h *Hub) Run(ctx context.Context) error {
	pubsub, err := h.broker.Subscribe(ctx, h.channel)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return errors.New("pubsub channel closed")
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.logError(ctx, "decode event", err)
				continue
			}
			h.dispatch(event)
		}
	}
}

func (h *Hub) dispatch(event Event) {
	h.mu.Lock()
	room := h.rooms[event.ProjectID]
	subs := make([]*Subscription, 0, len(room))
	for sub := range room {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.Events <- event:
		default:
			// slow consumer, drop
		}
	}
}

func (h *Hub) logError(ctx context.Context, msg string, err error) {
	if h.logg == nil {
		return
	}
	h.logg.Error(ctx, msg, err)
}
