package server

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/iWorld-y/customer_profile/app/profile/internal/conf"
)

func okHandler(context.Context, any) (any, error) { return "ok", nil }

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(nil)(okHandler)
	for i := 0; i < 100; i++ {
		_, err := h(context.Background(), nil)
		require.NoError(t, err)
	}
}

func TestRateLimit_Burst(t *testing.T) {
	h := RateLimit(&conf.RateLimit{Rps: 0.001, Burst: 3})(okHandler)

	for i := 0; i < 3; i++ {
		_, err := h(context.Background(), nil)
		require.NoError(t, err)
	}
	_, err := h(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, 429, errors.Code(err))
}

func TestUnaryMetrics(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)
	interceptor := unaryMetrics(m)

	reply, err := interceptor(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"},
		func(context.Context, any) (any, error) { return "pong", nil })

	require.NoError(t, err)
	assert.Equal(t, "pong", reply)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "profile_requests_total" {
			found = true
		}
	}
	assert.True(t, found)
}
