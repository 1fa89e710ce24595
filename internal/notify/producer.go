// Package notify streams ticket lifecycle events to Kafka for downstream
// consumers (mailers, analytics). Publishing is best-effort: the chain has
// already committed the state change by the time anything is published here.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"blocktix/internal/config"
	"blocktix/internal/logger"
	"blocktix/internal/models"
)

type Producer struct {
	purchased *kafka.Writer
	used      *kafka.Writer
	lifecycle *kafka.Writer
	cfg       config.KafkaConfig
	log       *logger.Logger
}

// NewProducer builds writers for each topic. With Enabled false or MockMode
// on, publishes only log.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	p := &Producer{cfg: cfg, log: log}
	if cfg.Enabled && !cfg.MockMode {
		p.purchased = newWriter(cfg.Brokers, cfg.Topics.TicketPurchased)
		p.used = newWriter(cfg.Brokers, cfg.Topics.TicketUsed)
		p.lifecycle = newWriter(cfg.Brokers, cfg.Topics.EventLifecycle)
	}
	return p
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
}

type ticketMessage struct {
	TicketID int64  `json:"ticketId,omitempty"`
	EventID  int64  `json:"eventId"`
	Tier     string `json:"tier,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Seat     string `json:"seat,omitempty"`
	TxHash   string `json:"txHash,omitempty"`
	At       int64  `json:"at"`
}

type lifecycleMessage struct {
	Action  string `json:"action"`
	EventID int64  `json:"eventId,omitempty"`
	Name    string `json:"name,omitempty"`
	TxHash  string `json:"txHash,omitempty"`
	At      int64  `json:"at"`
}

func (p *Producer) PublishTicketPurchased(ctx context.Context, eventID int64, tier models.TicketTier, owner, seat, txHash string) error {
	return p.publish(ctx, p.purchased, p.cfg.Topics.TicketPurchased, fmt.Sprintf("%d", eventID), ticketMessage{
		EventID: eventID,
		Tier:    tier.String(),
		Owner:   owner,
		Seat:    seat,
		TxHash:  txHash,
		At:      time.Now().Unix(),
	})
}

func (p *Producer) PublishTicketUsed(ctx context.Context, ticketID int64, txHash string) error {
	return p.publish(ctx, p.used, p.cfg.Topics.TicketUsed, fmt.Sprintf("%d", ticketID), ticketMessage{
		TicketID: ticketID,
		TxHash:   txHash,
		At:       time.Now().Unix(),
	})
}

func (p *Producer) PublishEventLifecycle(ctx context.Context, action string, eventID int64, name, txHash string) error {
	return p.publish(ctx, p.lifecycle, p.cfg.Topics.EventLifecycle, action, lifecycleMessage{
		Action:  action,
		EventID: eventID,
		Name:    name,
		TxHash:  txHash,
		At:      time.Now().Unix(),
	})
}

func (p *Producer) publish(ctx context.Context, w *kafka.Writer, topic, key string, msg interface{}) error {
	if !p.cfg.Enabled {
		return nil
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if p.cfg.MockMode || w == nil {
		p.log.Info("KAFKA", fmt.Sprintf("[mock] %s: %s", topic, string(value)))
		return nil
	}

	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Producer) Close() {
	for _, w := range []*kafka.Writer{p.purchased, p.used, p.lifecycle} {
		if w != nil {
			w.Close()
		}
	}
}
