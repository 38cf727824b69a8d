package rmqconsumer

import (
	"bytes"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"file-storage-api/config"
)

const body = `{"event_id":"6f1c3a52-6a0e-4f7e-9f53-1d2b1c7c9a11","event_action":"file.uploaded","user_id":1,"file_payload":{"id":3}}`

func Test_delivery_Table(t *testing.T) {
	type tc struct {
		name       string
		routingKey string
		body       string
		wantOut    string
		wantErr    bool
	}
	cases := []tc{
		{"uploaded", "file.uploaded", body, "Action=FileUploaded EventBody=" + body + "\n", false},
		{"deleted", "file.deleted", body, "Action=FileDeleted EventBody=" + body + "\n", false},
		{"unknown routing key", "POST", body, "", true},
		{"broken body", "file.deleted", `{"user_id":`, "", true},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &Consumer{log: zap.NewNop(), out: &out}

			err := c.delivery(amqp091.Delivery{RoutingKey: tt.routingKey, Body: []byte(tt.body)})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func Test_delivery_LogsEventFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	c := &Consumer{log: zap.New(core), out: &out}

	require.NoError(t, c.delivery(amqp091.Delivery{RoutingKey: "file.uploaded", Body: []byte(body)}))

	entries := logs.FilterMessage("file event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "FileUploaded", fields["action"])
	assert.Equal(t, int64(1), fields["user_id"])
	assert.Equal(t, int64(3), fields["file_id"])
}

func TestConnect_InvalidDSN(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop(), nil)

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}
