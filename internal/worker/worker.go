// Package worker pushes approval and admin notifications to registered devices.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"

	"sports-portal/internal/events"
	"sports-portal/internal/metrics"
	"sports-portal/internal/repository"
)

const (
	maxRetries = 3
	retryDelay = 2 * time.Second
)

// Pusher is satisfied by *apns2.Client.
type Pusher interface {
	PushWithContext(ctx apns2.Context, n *apns2.Notification) (*apns2.Response, error)
}

type Worker struct {
	pusher     Pusher
	tokens     repository.DeviceTokenRepository
	topic      string
	publish    func(subject string, data []byte) error
	retryDelay time.Duration
}

// New builds a worker; a nil pusher runs in mock mode and only logs deliveries.
func New(pusher Pusher, tokens repository.DeviceTokenRepository, topic string, publish func(subject string, data []byte) error) *Worker {
	return &Worker{
		pusher:     pusher,
		tokens:     tokens,
		topic:      topic,
		publish:    publish,
		retryDelay: retryDelay,
	}
}

// Subscribe wires the worker to the event subjects on nc.
func (w *Worker) Subscribe(nc *nats.Conn) error {
	if _, err := nc.Subscribe(events.SubjectPlayerStatusChanged, w.handleStatusChanged); err != nil {
		return err
	}
	if _, err := nc.Subscribe(events.SubjectNotificationCreated, w.handleNotificationCreated); err != nil {
		return err
	}
	log.Printf("Notification worker listening on '%s' and '%s'", events.SubjectPlayerStatusChanged, events.SubjectNotificationCreated)
	return nil
}

func (w *Worker) handleStatusChanged(msg *nats.Msg) {
	var event events.PlayerStatusChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	ctx := context.Background()
	tokens, err := w.tokens.ListByUser(ctx, event.UserID)
	if err != nil {
		log.Printf("Failed to retrieve device tokens for user %s: %v", event.UserID, err)
		return
	}

	w.deliver(ctx, msg.Data, tokens, event.Title, event.Message)
}

func (w *Worker) handleNotificationCreated(msg *nats.Msg) {
	var event events.NotificationCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	ctx := context.Background()
	var (
		tokens []string
		err    error
	)
	switch {
	case event.IsGeneral:
		tokens, err = w.tokens.ListAll(ctx)
	case event.RecipientID != nil:
		tokens, err = w.tokens.ListByUser(ctx, *event.RecipientID)
	default:
		return
	}
	if err != nil {
		log.Printf("Failed to retrieve device tokens for notification %s: %v", event.NotificationID, err)
		return
	}

	w.deliver(ctx, msg.Data, tokens, event.Title, event.Message)
}

func (w *Worker) deliver(ctx context.Context, raw []byte, tokens []string, title, body string) {
	if len(tokens) == 0 {
		log.Printf("No device tokens found. No notifications sent.")
		return
	}

	alert := payload.NewPayload().AlertTitle(title).AlertBody(body).Sound("default")

	for _, token := range tokens {
		notification := &apns2.Notification{
			DeviceToken: token,
			Topic:       w.topic,
			Payload:     alert,
			ApnsID:      uuid.NewString(),
		}

		if w.pusher == nil {
			metrics.PushDeliveries.WithLabelValues("mock").Inc()
			log.Printf("SUCCESS (mock): Push notification sent to device %s", token)
			continue
		}

		if err := w.pushWithRetry(ctx, notification); err != nil {
			metrics.PushDeliveries.WithLabelValues("failed").Inc()
			slog.ErrorContext(ctx, "push failed after retries", slog.String("device", token), slog.Any("error", err))
			w.deadLetter(raw, token, err)
			continue
		}
		metrics.PushDeliveries.WithLabelValues("sent").Inc()
	}
}

func (w *Worker) pushWithRetry(ctx context.Context, n *apns2.Notification) error {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		res, err := w.pusher.PushWithContext(ctx, n)
		switch {
		case err != nil:
			lastErr = err
		case res.Sent():
			log.Printf("SUCCESS: Notification sent with APNS ID: %s", res.ApnsID)
			return nil
		default:
			lastErr = fmt.Errorf("apns rejected notification: %s", res.Reason)
		}

		log.Printf("Push attempt %d failed: %v. Retrying in %s...", attempt, lastErr, w.retryDelay)
		if attempt < maxRetries {
			time.Sleep(w.retryDelay)
		}
	}
	return lastErr
}

func (w *Worker) deadLetter(raw []byte, token string, cause error) {
	if w.publish == nil {
		return
	}
	data, err := json.Marshal(events.PushFailedEvent{
		EventType:   events.SubjectPushFailed,
		DeviceToken: token,
		Error:       cause.Error(),
		Event:       json.RawMessage(raw),
		At:          time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Error marshalling dead-letter payload: %v", err)
		return
	}
	if err := w.publish(events.SubjectPushFailed, data); err != nil {
		log.Printf("Failed to publish to DLQ '%s': %v", events.SubjectPushFailed, err)
		return
	}
	log.Printf("Published failed push to DLQ '%s'", events.SubjectPushFailed)
}
