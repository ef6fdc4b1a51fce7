package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moura95/account-auth/internal/domain/email"
)

type fakeAcknowledger struct {
	acked    int
	rejected int
	requeued int
}

func (f *fakeAcknowledger) Ack(uint64, bool) error { f.acked++; return nil }

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	return f.Reject(0, requeue)
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	if requeue {
		f.requeued++
	} else {
		f.rejected++
	}
	return nil
}

func newTestConsumer() *Consumer {
	return &Consumer{
		queueName: "email_queue",
		validator: email.NewEmailValidator(),
		logger:    zap.NewNop().Sugar(),
	}
}

func validMessage() email.QueueMessage {
	return email.QueueMessage{
		EmailID: uuid.New(),
		Type:    email.EmailTypeWelcome,
		Data:    email.WelcomeEmailData{UserEmail: "john@example.com"},
	}
}

func delivery(t *testing.T, ack *fakeAcknowledger, body any, redelivered bool) amqp.Delivery {
	t.Helper()
	var raw []byte
	if s, ok := body.(string); ok {
		raw = []byte(s)
	} else {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: ack, Body: raw, Redelivered: redelivered}
}

func TestConsumer_HandleMessage(t *testing.T) {
	ctx := context.Background()
	ok := func(context.Context, email.QueueMessage) error { return nil }
	failing := func(context.Context, email.QueueMessage) error { return errors.New("smtp down") }

	tests := []struct {
		name        string
		body        any
		redelivered bool
		handler     email.MessageHandler
		want        fakeAcknowledger
	}{
		{name: "processed message is acked", body: validMessage(), handler: ok, want: fakeAcknowledger{acked: 1}},
		{name: "malformed json is dropped", body: "{not json", handler: ok, want: fakeAcknowledger{rejected: 1}},
		{name: "invalid message is dropped", body: email.QueueMessage{Type: email.EmailTypeWelcome}, handler: ok, want: fakeAcknowledger{rejected: 1}},
		{name: "first failure is requeued", body: validMessage(), handler: failing, want: fakeAcknowledger{requeued: 1}},
		{name: "redelivered failure is dropped", body: validMessage(), redelivered: true, handler: failing, want: fakeAcknowledger{rejected: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			newTestConsumer().handleMessage(ctx, delivery(t, ack, tt.body, tt.redelivered), tt.handler)
			assert.Equal(t, tt.want, *ack)
		})
	}
}

func TestConsumer_HandlerReceivesDecodedMessage(t *testing.T) {
	msg := validMessage()
	var got email.QueueMessage
	handler := func(_ context.Context, m email.QueueMessage) error {
		got = m
		return nil
	}

	newTestConsumer().handleMessage(context.Background(), delivery(t, &fakeAcknowledger{}, msg, false), handler)

	assert.Equal(t, msg, got)
}

func TestNewPublishing(t *testing.T) {
	msg := validMessage()

	p, err := newPublishing(msg)

	require.NoError(t, err)
	assert.Equal(t, amqp.Persistent, p.DeliveryMode)
	assert.Equal(t, "application/json", p.ContentType)
	assert.Equal(t, msg.EmailID.String(), p.MessageId)

	var decoded email.QueueMessage
	require.NoError(t, json.Unmarshal(p.Body, &decoded))
	assert.Equal(t, msg, decoded)
}
