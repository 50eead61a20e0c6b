package alarmclock

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/engine"
)

// Service abstracts the engine operations the transport layer depends on.
type Service interface {
	Add(ctx context.Context, t alarm.TimeOfDay) (alarm.Entry, error)
	RemoveSelected(ctx context.Context, label string) (bool, error)
	List(ctx context.Context) ([]alarm.Entry, error)
	Stop() bool
	Subscribe() *engine.Subscription
}

// Server implements the AlarmClock gRPC API.
type Server struct {
	// service provides the alarm clock operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// AddAlarm schedules an alarm.
func (s *Server) AddAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	t, err := TimeOfDayFromStruct(req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	entry, err := s.service.Add(ctx, t)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return EntryToStruct(entry), nil
}

// RemoveAlarm removes the first alarm with the requested label.
// An empty label means nothing is selected.
func (s *Server) RemoveAlarm(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	removed, err := s.service.RemoveSelected(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return wrapperspb.Bool(removed), nil
}

// ListAlarms returns the pending alarms.
func (s *Server) ListAlarms(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	entries, err := s.service.List(ctx)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return EntriesToList(entries), nil
}

// StopSound silences the sounding alarm and reports whether one was sounding.
func (s *Server) StopSound(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	stopped := s.service.Stop()

	logger.InfoKV(ctx, "Stop requested", "was_sounding", stopped)

	return wrapperspb.Bool(stopped), nil
}

// WatchEvents streams engine events until the client leaves or the engine stops.
func (s *Server) WatchEvents(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()

	sub := s.service.Subscribe()
	defer sub.Close()

	// Headers tell the client it is subscribed.
	if err := stream.SendHeader(metadata.MD{}); err != nil {
		return err
	}

	logger.Debug(ctx, "Event watcher connected")

	for {
		select {
		case <-ctx.Done():
			logger.Debug(ctx, "Event watcher disconnected")
			return nil
		case ev, ok := <-sub.C():
			if !ok {
				return status.Error(codes.Unavailable, "event stream closed")
			}

			if err := stream.Send(EventToStruct(ev)); err != nil {
				return err
			}
		}
	}
}

// toStatus maps domain and engine errors onto gRPC status codes.
func toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, alarm.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, alarm.ErrSelectionRequired):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, engine.ErrStopped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		logger.Errorf(ctx, "Unexpected failure while serving request: %v", err)

		return status.Error(codes.Internal, "internal error")
	}
}
