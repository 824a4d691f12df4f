package grpcapi

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}

		switch status.Code(err) {
		case codes.OK:
			logger.Debug("gRPC request", fields...)
		case codes.Internal, codes.Unknown:
			logger.Error("gRPC request failed", append(fields, zap.Error(err))...)
		default:
			logger.Info("gRPC request rejected", append(fields, zap.Error(err))...)
		}

		return resp, err
	}
}

// RecoveryInterceptor turns a handler panic into codes.Internal.
func RecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC handler panic",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.Stack("stack"))
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
