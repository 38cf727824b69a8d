package mq

import (
	"time"

	"github.com/google/uuid"

	"file-storage-api/internal/interface/api/rest/dto/file"
)

// Routing keys of file events.
const (
	RoutingFileUploaded = "file.uploaded"
	RoutingFileDeleted  = "file.deleted"
)

var RoutingKeys = []string{RoutingFileUploaded, RoutingFileDeleted}

type Event struct {
	Id      uuid.UUID `json:"event_id"`
	TS      time.Time `json:"time_stamp"`
	Action  string    `json:"event_action"`
	UserID  int64     `json:"user_id"`
	Payload file.File `json:"file_payload"`
}

// Nop drops every event. Used when RabbitMQ is not configured.
type Nop struct{}

func (Nop) Publish(Event) {}
