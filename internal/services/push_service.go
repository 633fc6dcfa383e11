package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// PushPayload is the notification content handed to the push gateway.
type PushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendResult is the per-token delivery outcome reported by the gateway.
// Invalid marks tokens the gateway will never deliver to; those get pruned.
type SendResult struct {
	Token   string `json:"token"`
	Success bool   `json:"success"`
	Invalid bool   `json:"invalid"`
	Error   string `json:"error,omitempty"`
}

// PushSender delivers a payload to a list of device tokens and reports the
// outcome per token.
type PushSender interface {
	Send(ctx context.Context, tokens []string, payload PushPayload) ([]SendResult, error)
}

// HTTPPushSender posts deliveries to the external push gateway.
type HTTPPushSender struct {
	gatewayURL string
	apiKey     string
	client     *http.Client
}

// NewHTTPPushSender creates a sender for the configured gateway.
func NewHTTPPushSender(gatewayURL, apiKey string) *HTTPPushSender {
	return &HTTPPushSender{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the tokens and payload to the gateway and decodes the
// per-token results.
func (s *HTTPPushSender) Send(ctx context.Context, tokens []string, payload PushPayload) ([]SendResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"tokens":  tokens,
		"payload": payload,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL+"/v1/send", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Results []SendResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode push gateway response: %w", err)
	}
	return decoded.Results, nil
}

// PushService fans notifications out to a user's registered devices and
// prunes tokens the gateway reports as invalid.
type PushService struct {
	sender  PushSender
	users   *UserService
	metrics *Metrics
}

// NewPushService creates a new push service
func NewPushService(sender PushSender, users *UserService, metrics *Metrics) *PushService {
	return &PushService{
		sender:  sender,
		users:   users,
		metrics: metrics,
	}
}

// SendToUser delivers a payload to every device a user has registered.
// Users with no devices are a silent no-op.
func (s *PushService) SendToUser(ctx context.Context, userID string, payload PushPayload) error {
	tokens, err := s.users.DeviceTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	results, err := s.sender.Send(ctx, tokens, payload)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PushDeliveries.WithLabelValues("error").Add(float64(len(tokens)))
		}
		return err
	}

	var invalid []string
	for _, r := range results {
		outcome := "ok"
		switch {
		case r.Invalid:
			outcome = "invalid_token"
			invalid = append(invalid, r.Token)
		case !r.Success:
			outcome = "error"
		}
		if s.metrics != nil {
			s.metrics.PushDeliveries.WithLabelValues(outcome).Inc()
		}
	}

	if len(invalid) > 0 {
		pruned, err := s.users.PruneTokens(ctx, invalid)
		if err != nil {
			log.Printf("⚠️ [PUSH] Failed to prune %d invalid tokens: %v", len(invalid), err)
		} else {
			log.Printf("🧹 [PUSH] Pruned %d invalid device tokens for user %s", pruned, userID)
		}
	}

	return nil
}
