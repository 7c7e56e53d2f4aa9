package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities/internal/domain/registry"
)

func TestMetrics_TrackRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	svc, err := registry.NewService([]registry.Activity{{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu"},
	}}, registry.WithObserver(m))
	require.NoError(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(m.participants.WithLabelValues("Chess Club")))

	ctx := context.Background()
	_, err = svc.Signup(ctx, "Chess Club", "a@mergington.edu")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "Chess Club", "a@mergington.edu")
	require.Error(t, err)
	_, err = svc.Remove(ctx, "Nope", "a@mergington.edu")
	require.Error(t, err)

	require.Equal(t, 2.0, testutil.ToFloat64(m.participants.WithLabelValues("Chess Club")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("signup", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("signup", "rejected")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("remove", "not_found")))
}

func TestMetrics_RegisterTwicePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	require.Panics(t, func() { NewMetrics(reg) })
}
