package tripmesh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/coordinator"
	"github.com/hupe1980/tripmesh/travel"
)

func TestTripMesh_PlanTravelWorkflow(t *testing.T) {
	root, err := travel.NewWorkflow()
	require.NoError(t, err)

	mesh, err := New(root, func(o *Options) {
		o.Config = coordinator.Config{
			MaxRetries:        3,
			RetryDelay:        0,
			OverallTimeout:    10 * time.Second,
			TerminalOutputKey: travel.StateApprovalStatus,
		}
	})
	require.NoError(t, err)

	res := mesh.Plan(context.Background(), map[string]any{
		"budget":      3000.0,
		"origin":      "New York",
		"destination": "Tokyo",
		"dates": map[string]any{
			"start": "2024-05-01",
			"end":   "2024-05-07",
		},
		"preferred_activities": []any{"temples", "shopping"},
	})

	require.Equal(t, coordinator.StatusSuccess, res.Status)

	payload, ok := res.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, payload["approved"])
}

func TestTripMesh_StopShortCircuitsNextPlan(t *testing.T) {
	root, err := travel.NewWorkflow()
	require.NoError(t, err)

	mesh, err := New(root)
	require.NoError(t, err)

	mesh.Stop()

	res := mesh.Plan(context.Background(), map[string]any{"destination": "Tokyo"})
	assert.Equal(t, coordinator.StatusStopped, res.Status)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	root, err := travel.NewWorkflow()
	require.NoError(t, err)

	_, err = New(root, func(o *Options) {
		o.Config = coordinator.Config{}
	})
	require.Error(t, err)
}
