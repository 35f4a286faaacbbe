package runtime

import (
	"context"
	"log/slog"
	"roomcast/domain"
	"roomcast/domain/event"
	"roomcast/mocks"
	"roomcast/runtime/workers"
	"roomcast/sink"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOrchestrator_Registers_Every_Worker(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	sup := mocks.NewMockISupervisor(ctrl)

	// Given the registry then the three telemetry workers
	gomock.InOrder(
		sup.EXPECT().Add(gomock.AssignableToTypeOf(&RoomRegistry{})).Return(sup),
		sup.EXPECT().Add(
			gomock.AssignableToTypeOf(&workers.TelemetryWorker{}),
			gomock.AssignableToTypeOf(&workers.ChannelCapacityWorker{}),
			gomock.AssignableToTypeOf(&workers.HealthMonitoringWorker{}),
		).Return(sup),
		sup.EXPECT().Run(gomock.Any()).Times(1),
	)
	sup.EXPECT().Stop().Times(1)

	orchestrator := NewOrchestrator(log, sup, make(chan event.Event, 1), NewSequentialIDGenerator(),
		testBufferSize, testDeliveryTimeout, testPublishTimeout, time.Minute, 1)

	// When
	req.NoError(orchestrator.Start(context.Background()))
	orchestrator.Stop()

	// Then
	req.NotNil(orchestrator.Bus())
}

func TestOrchestrator_Serves_The_Bus_Until_Stopped(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	telemetryChan := make(chan event.Event, testBufferSize)
	sup := workers.NewSupervisor(log, telemetryChan, 10*time.Millisecond)
	orchestrator := NewOrchestrator(log, sup, telemetryChan, NewSequentialIDGenerator(),
		testBufferSize, testDeliveryTimeout, testPublishTimeout, time.Hour, 1)

	done := make(chan error, 1)
	go func() {
		done <- orchestrator.Start(context.Background())
	}()

	// When a member joins through the bus
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	id, err := orchestrator.Bus().Join(ctx, domain.DefaultRoom, nil, sink.NewConnectionSink(1))

	// Then the supervised registry answered
	req.NoError(err)
	req.EqualValues(1, id)

	// When the orchestrator stops, every worker returns
	orchestrator.Stop()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(2 * time.Second):
		req.Fail("orchestrator did not stop")
	}
}
