package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Atlas00000/productvisualizer/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "cart.item-added", zap.NewNop())

	event := models.CartEvent{
		EventType:        models.CartEventItemAdded,
		ProductID:        "64b000000000000000000001",
		ProductName:      "Modern Chair",
		UserID:           "user-1",
		SelectedColor:    "Brown",
		SelectedMaterial: "Leather",
		TotalPrice:       374,
		Timestamp:        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "user-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, models.CartEventItemAdded, string(msg.Headers[0].Value))

	var got models.CartEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, 374.0, got.TotalPrice)
	assert.Equal(t, "Leather", got.SelectedMaterial)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewProducerWithWriter(&fakeWriter{err: boom}, "cart", zap.NewNop())

	err := p.Publish(context.Background(), models.CartEvent{UserID: "u"})
	assert.ErrorIs(t, err, boom)
}
