package alarmclock

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// ActorMetadataKey carries "user@host" of the caller.
const ActorMetadataKey = "x-alarm-clock-actor"

// unknownActor is logged when a caller does not identify itself.
const unknownActor = "unknown"

// ActorFromContext returns the caller identity sent with the request.
func ActorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return unknownActor
	}

	values := md.Get(ActorMetadataKey)
	if len(values) == 0 || values[0] == "" {
		return unknownActor
	}

	return values[0]
}

// UnaryLogging attaches method and actor to the request logger and logs the outcome.
func UnaryLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.WithFields(ctx, "method", info.FullMethod, "actor", ActorFromContext(ctx))
		started := time.Now()

		resp, err := handler(ctx, req)
		if err != nil {
			logger.WarnKV(ctx, "Request failed", "code", status.Code(err).String(), "error", err)
			return resp, err
		}

		logger.DebugKV(ctx, "Request served", "duration", time.Since(started))

		return resp, nil
	}
}

// loggingStream overrides the stream context.
type loggingStream struct {
	grpc.ServerStream

	ctx context.Context //nolint:containedctx // Mirrors grpc.ServerStream.Context.
}

// Context returns the enriched context.
func (s *loggingStream) Context() context.Context {
	return s.ctx
}

// StreamLogging attaches method and actor to the stream logger.
func StreamLogging() grpc.StreamServerInterceptor {
	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := stream.Context()
		ctx = logger.WithFields(ctx, "method", info.FullMethod, "actor", ActorFromContext(ctx))

		err := handler(srv, &loggingStream{ServerStream: stream, ctx: ctx})
		if err != nil {
			logger.WarnKV(ctx, "Stream ended with error", "code", status.Code(err).String(), "error", err)
		}

		return err
	}
}
