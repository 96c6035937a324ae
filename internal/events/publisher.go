package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"sports-portal/internal/model"
	"sports-portal/internal/repository"
)

type EventPublisher interface {
	PublishPlayerRegistered(user *model.User, player *model.Player) error
	PublishStatusChanged(change repository.StatusChange) error
	PublishNotificationCreated(n *model.Notification) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("sports-portal"))
	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

func (p *NatsPublisher) PublishPlayerRegistered(user *model.User, player *model.Player) error {
	return p.publish(SubjectPlayerRegistered, PlayerRegisteredEvent{
		EventType: SubjectPlayerRegistered,
		UserID:    user.ID,
		PlayerID:  player.ID,
		Email:     user.Email,
		SportID:   player.SportID,
		At:        time.Now(),
	})
}

func (p *NatsPublisher) PublishStatusChanged(change repository.StatusChange) error {
	return p.publish(SubjectPlayerStatusChanged, NewStatusChangedEvent(change))
}

func (p *NatsPublisher) PublishNotificationCreated(n *model.Notification) error {
	return p.publish(SubjectNotificationCreated, NotificationCreatedEvent{
		EventType:      SubjectNotificationCreated,
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		IsGeneral:      n.IsGeneral,
		Title:          n.Title,
		Message:        n.Message,
	})
}

func NewStatusChangedEvent(change repository.StatusChange) PlayerStatusChangedEvent {
	return PlayerStatusChangedEvent{
		EventType: SubjectPlayerStatusChanged,
		UserID:    change.UserID,
		From:      change.From,
		To:        change.To,
		Title:     change.Title,
		Message:   change.Message,
		At:        time.Now(),
	}
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)
	return nil
}
