package service

import (
	"context"

	"github.com/deppfellow/joke-api/internal/lib/job"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/deppfellow/joke-api/internal/server"
)

// TelemetryService accepts browser beacons. Nothing it does can fail the
// request: errors are logged and the beacon is dropped or handled inline.
type TelemetryService struct {
	server *server.Server
}

func NewTelemetryService(s *server.Server) *TelemetryService {
	return &TelemetryService{server: s}
}

// Ingest queues beacon for the job worker when one runs, otherwise records it directly.
func (s *TelemetryService) Ingest(ctx context.Context, beacon model.Beacon) {
	if s.server.Job != nil {
		err := s.server.Job.EnqueueBeacon(ctx, beacon)
		if err == nil {
			return
		}
		s.server.Logger.Warn().Err(err).Msg("failed to enqueue telemetry beacon, recording inline")
	}

	job.RecordBeacon(s.server.Logger, s.server.Metrics, beacon)
}
