package audit

import (
	"context"
	"encoding/json"

	"github.com/radieske/betting-backoffice/internal/shared/kafka"
	"github.com/radieske/betting-backoffice/pkg/contracts/events"
)

// KafkaPublisher publica o evento no tópico de auditoria; chave = entidade/alvo
type KafkaPublisher struct {
	Writer kafka.MessageWriter
	Topic  string
}

func NewKafkaPublisher(w kafka.MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

func (p *KafkaPublisher) Record(ctx context.Context, e events.BackofficeMutation) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return kafka.WriteJSON(ctx, p.Writer, e.Entity+"/"+e.TargetID, b)
}
