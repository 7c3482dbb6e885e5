package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct{ msgs []kafka.Message }

func (c *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	c.msgs = append(c.msgs, msgs...)
	return nil
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
}

func TestWriteJSON(t *testing.T) {
	w := &captureWriter{}
	require.NoError(t, WriteJSON(context.Background(), w, "bets", []byte(`{"ok":true}`)))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "bets", string(w.msgs[0].Key))
	assert.False(t, w.msgs[0].Time.IsZero())
}

func TestNewWriter(t *testing.T) {
	w := NewWriter("a:9092,b:9092", "backoffice_audit")
	assert.Equal(t, "backoffice_audit", w.Topic)
	assert.NotNil(t, w.Addr)
}
