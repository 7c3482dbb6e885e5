package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/betting-backoffice/pkg/contracts/events"
)

// Recorder registra as escritas feitas pelo console
type Recorder interface {
	Record(ctx context.Context, e events.BackofficeMutation) error
}

// NewEvent monta o evento com id e timestamp
func NewEvent(entity, op, targetID, version string, payload any) events.BackofficeMutation {
	e := events.BackofficeMutation{
		ID:        uuid.NewString(),
		Entity:    entity,
		Operation: op,
		TargetID:  targetID,
		Version:   version,
		Ts:        time.Now().UTC(),
	}
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			e.Payload = b
		}
	}
	return e
}

// Multi envia para todos os destinos; um destino fora não impede os outros
type Multi []Recorder

func (m Multi) Record(ctx context.Context, e events.BackofficeMutation) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogRecorder é o destino sempre ligado
type LogRecorder struct{ Log *zap.Logger }

func (l LogRecorder) Record(_ context.Context, e events.BackofficeMutation) error {
	l.Log.Info("backoffice mutation",
		zap.String("audit_id", e.ID),
		zap.String("entity", e.Entity),
		zap.String("op", e.Operation),
		zap.String("target", e.TargetID),
	)
	return nil
}
