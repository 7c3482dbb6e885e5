package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/betting-backoffice/pkg/contracts/events"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (c *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	c.msgs = append(c.msgs, msgs...)
	return c.err
}

type failing struct{}

func (failing) Record(context.Context, events.BackofficeMutation) error { return errors.New("down") }

func TestNewEvent(t *testing.T) {
	e := NewEvent("bets", "update", "42", "v1", map[string]string{"placement_status": "failed"})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Ts.IsZero())
	assert.JSONEq(t, `{"placement_status":"failed"}`, string(e.Payload))

	e = NewEvent("bookies", "delete", "BetMaster", "", nil)
	assert.Nil(t, e.Payload)
}

func TestKafkaPublisher(t *testing.T) {
	w := &captureWriter{}
	p := NewKafkaPublisher(w, "backoffice_audit")

	e := NewEvent("customers", "create", "", "", nil)
	require.NoError(t, p.Record(context.Background(), e))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "customers/", string(w.msgs[0].Key))

	var got events.BackofficeMutation
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, e.ID, got.ID)
}

func TestPostgresStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS backoffice_audit").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, store.EnsureSchema(context.Background()))

	e := NewEvent("events", "delete", "9", "abc", nil)
	mock.ExpectExec("INSERT INTO backoffice_audit").
		WithArgs(e.ID, "events", "delete", "9", "abc", nil, e.Ts).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.Record(context.Background(), e))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMultiKeepsGoing(t *testing.T) {
	w := &captureWriter{}
	m := Multi{failing{}, LogRecorder{Log: zap.NewNop()}, NewKafkaPublisher(w, "t")}

	err := m.Record(context.Background(), NewEvent("bets", "create", "", "", nil))
	require.Error(t, err)
	assert.Len(t, w.msgs, 1)
}
