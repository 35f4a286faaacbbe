package event

import (
	"roomcast/domain"
	"time"
)

// Type identifies a technical event travelling on the telemetry channel.
type Type string

const (
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	ChannelCapacityType     Type = "CHANNEL_CAPACITY"
	ProcessUsageType        Type = "PROCESS_USAGE"
	RoomOccupancyType       Type = "ROOM_OCCUPANCY"
)

// Event is a technical event. It never reaches a client.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}

type ProcessUsage struct {
	PID int32
	Cpu float64
	Rss uint64
}

type RoomOccupancy struct {
	Members map[domain.RoomName]int
}
