package mq

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-storage-api/config"
)

func TestRabbitMQ_PublishNeverBlocks(t *testing.T) {
	r := New(config.MQ{}, zap.NewNop())

	for i := 0; i < bufferSize+10; i++ {
		r.Publish(Event{Id: uuid.New(), Action: RoutingFileUploaded})
	}

	assert.Len(t, r.in, bufferSize)
	e := <-r.in
	assert.Equal(t, RoutingFileUploaded, e.Action)
}

func TestRabbitMQ_ConnectInvalidDSN(t *testing.T) {
	r := New(config.MQ{}, zap.NewNop())

	err := r.Connect(context.Background(), "amqp://bad:://dsn")
	require.Error(t, err)
	assert.Nil(t, r.GetConn())
}

func TestNop_Publish(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.Publish(Event{}) })
}
