package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"madiskarte.ai/cmd/server/llm"
	"madiskarte.ai/cmd/server/publishing"
)

// LoggingInterceptor logs every unary call and records request metrics
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)

		recordRequestDuration(info.FullMethod, duration.Seconds())

		code := status.Code(err)
		if err != nil {
			incrementGRPCError(info.FullMethod, code.String())
			logger.Warn("request failed",
				"method", info.FullMethod,
				"code", code.String(),
				"duration", duration,
				"error", err)
			return resp, err
		}

		logger.Info("request handled", "method", info.FullMethod, "duration", duration)
		return resp, nil
	}
}

// ErrorInterceptor converts domain errors into gRPC status errors
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, toStatusError(err)
		}
		return resp, nil
	}
}

// toStatusError maps an error to the gRPC code a client should see
func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var authErr *llm.ProviderAuthError
	var reqErr *llm.ProviderRequestError

	switch {
	case errors.As(err, &authErr):
		return status.Error(codes.Unauthenticated, "AI provider rejected the server credential")
	case errors.As(err, &reqErr):
		switch {
		case reqErr.Canceled():
			return status.Error(codes.Canceled, "request canceled")
		case reqErr.Timeout():
			return status.Error(codes.DeadlineExceeded, "AI provider timed out")
		case reqErr.RateLimited():
			return status.Error(codes.ResourceExhausted, "AI provider quota exceeded")
		default:
			return status.Errorf(codes.Unavailable, "AI provider request failed: %v", reqErr.Err)
		}
	case errors.Is(err, llm.ErrUnknownRole), errors.Is(err, publishing.ErrUnknownItem):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// errorType labels provider errors for metrics
func errorType(err error) string {
	var authErr *llm.ProviderAuthError
	var reqErr *llm.ProviderRequestError

	switch {
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &reqErr):
		switch {
		case reqErr.Canceled():
			return "canceled"
		case reqErr.Timeout():
			return "timeout"
		case reqErr.RateLimited():
			return "rate_limited"
		default:
			return "request"
		}
	default:
		return "other"
	}
}
