package server

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/iWorld-y/customer_profile/app/profile/internal/conf"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/metrics"
)

// ErrRateLimited 超过接口限流
var ErrRateLimited = errors.New(429, "RATE_LIMITED", "too many requests")

// RateLimit 全局令牌桶限流，未配置时直接放行
func RateLimit(c *conf.RateLimit) middleware.Middleware {
	if c == nil || c.Rps <= 0 {
		return func(handler middleware.Handler) middleware.Handler { return handler }
	}
	burst := int(c.Burst)
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(c.Rps), burst)
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			if !limiter.Allow() {
				return nil, ErrRateLimited
			}
			return handler(ctx, req)
		}
	}
}

// Metrics 按 operation 记录请求数和耗时
func Metrics(m *metrics.Metrics) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			var operation string
			if tr, ok := transport.FromServerContext(ctx); ok {
				operation = tr.Operation()
			}
			start := time.Now()
			reply, err := handler(ctx, req)
			m.ObserveRequest(operation, strconv.Itoa(errors.Code(err)), time.Since(start))
			return reply, err
		}
	}
}

// unaryMetrics gRPC 请求指标，operation 取完整方法名
func unaryMetrics(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		reply, err := handler(ctx, req)
		m.ObserveRequest(info.FullMethod, strconv.Itoa(errors.Code(err)), time.Since(start))
		return reply, err
	}
}
