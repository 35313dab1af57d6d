package otel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), config.OtelConfig{ServiceName: "test"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable address, nothing is exported before shutdown.
	shutdown, err := otel.Setup(context.Background(), config.OtelConfig{
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "test",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := otel.Tracer().Start(context.Background(), "noop")
	span.End()
}
