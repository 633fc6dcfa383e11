package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Record event types carried on the bus
const (
	EventRhythmMapCreated = "rhythm_map_created"
	EventMirrorCreated    = "cognitive_mirror_created"
)

// RecordEvent announces a newly written daily record. Pattern detectors
// subscribe to these instead of polling collections.
type RecordEvent struct {
	Type       string `json:"type"`
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	InstanceID string `json:"instanceId"`
}

// RecordHandler is a callback for handling record-created events.
type RecordHandler func(ctx context.Context, event *RecordEvent)

// PubSubService fans record-created events out to the pattern detectors.
// With Redis configured the events travel over pub/sub so any instance can
// pick them up; without Redis they are dispatched in-process. There is no
// delivery guard: a write that is published twice triggers the detectors
// twice.
type PubSubService struct {
	redis      *RedisService
	pubsub     *redis.PubSub
	handlers   map[string][]RecordHandler
	mu         sync.RWMutex
	instanceID string
	ctx        context.Context
	cancel     context.CancelFunc
}

const recordChannel = "records:events"

// NewPubSubService creates a new record event bus. redisService may be nil;
// events are then dispatched in-process only.
func NewPubSubService(redisService *RedisService, instanceID string) *PubSubService {
	ctx, cancel := context.WithCancel(context.Background())
	return &PubSubService{
		redis:      redisService,
		handlers:   make(map[string][]RecordHandler),
		instanceID: instanceID,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Subscribe registers a handler for a record event type.
func (s *PubSubService) Subscribe(eventType string, handler RecordHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[eventType] = append(s.handlers[eventType], handler)
	log.Printf("📡 [PUBSUB] Subscribed to record event: %s", eventType)
}

// Start begins listening for record events. No-op without Redis.
func (s *PubSubService) Start() error {
	if s.redis == nil {
		log.Println("⚠️  [PUBSUB] Redis not configured, record events dispatch in-process")
		return nil
	}

	s.pubsub = s.redis.Client().Subscribe(s.ctx, recordChannel)

	// Wait for subscription confirmation
	if _, err := s.pubsub.Receive(s.ctx); err != nil {
		return err
	}

	go s.processMessages()

	log.Printf("✅ [PUBSUB] Listening for record events (instance: %s)", s.instanceID)
	return nil
}

// Stop shuts the bus down.
func (s *PubSubService) Stop() {
	s.cancel()
	if s.pubsub != nil {
		s.pubsub.Close()
	}
}

// processMessages handles incoming pub/sub messages
func (s *PubSubService) processMessages() {
	ch := s.pubsub.Channel()

	for {
		select {
		case <-s.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handleMessage(msg)
		}
	}
}

// handleMessage processes a single pub/sub message
func (s *PubSubService) handleMessage(msg *redis.Message) {
	var event RecordEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		log.Printf("⚠️ [PUBSUB] Failed to unmarshal record event: %v", err)
		return
	}

	s.dispatch(s.ctx, &event)
}

// dispatch runs the registered handlers for an event.
func (s *PubSubService) dispatch(ctx context.Context, event *RecordEvent) {
	s.mu.RLock()
	handlers := s.handlers[event.Type]
	s.mu.RUnlock()

	for _, handler := range handlers {
		go handler(ctx, event)
	}
}

// Publish announces a record-created event. With Redis the event goes over
// the wire and is handled by whichever instance receives it; without Redis
// it is dispatched directly.
func (s *PubSubService) Publish(ctx context.Context, eventType, userID, date string) error {
	event := &RecordEvent{
		Type:       eventType,
		UserID:     userID,
		Date:       date,
		InstanceID: s.instanceID,
	}

	if s.redis == nil {
		s.dispatch(ctx, event)
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.redis.Client().Publish(ctx, recordChannel, data).Err()
}
