package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
)

func TestStage_Run_WritesOutputKey(t *testing.T) {
	collab := newScriptedTool("search_flights", tool.Success(map[string]any{"flights": []any{"a"}}))

	stage := NewStage("flight_finder", "flight_options", collab)
	rc := newRunContext(map[string]any{"origin": "NYC"})

	require.NoError(t, stage.Run(rc))

	v, ok := rc.State.Get("flight_options")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"flights": []any{"a"}}, v)
	assert.Equal(t, []string{"flight_options"}, stage.OutputKeys())
}

func TestStage_Run_DefaultInputsPassRequest(t *testing.T) {
	collab := newScriptedTool("echo", tool.Success(map[string]any{}))
	stage := NewStage("echo_stage", "echo_out", collab)

	rc := newRunContext(map[string]any{"origin": "NYC", "budget": 3000.0})
	require.NoError(t, stage.Run(rc))

	require.Len(t, collab.gotArgs, 1)
	assert.Equal(t, "NYC", collab.gotArgs[0]["origin"])
	assert.Equal(t, 3000.0, collab.gotArgs[0]["budget"])
}

func TestStage_Run_InputSelectorReadsState(t *testing.T) {
	collab := newScriptedTool("check_budget", tool.Success(map[string]any{"within_budget": true}))

	stage := NewStage("budget_checker", "budget_analysis", collab,
		WithInputs(func(rc *core.RunContext) map[string]any {
			v, _ := rc.State.Get("itinerary")
			return map[string]any{"itinerary": v}
		}))

	rc := newRunContext(nil)
	rc.State.Set("itinerary", "day by day plan")

	require.NoError(t, stage.Run(rc))
	assert.Equal(t, "day by day plan", collab.gotArgs[0]["itinerary"])
}

func TestStage_Run_CollaboratorErrorResult(t *testing.T) {
	collab := newScriptedTool("search_hotels", tool.Errorf("no rooms"))
	stage := NewStage("hotel_booker", "hotel_options", collab)

	rc := newRunContext(nil)
	err := stage.Run(rc)
	require.Error(t, err)

	var stageErr *core.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "hotel_booker", stageErr.Stage)

	var collabErr *core.CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "search_hotels", collabErr.Tool)
	assert.Contains(t, collabErr.Error(), "no rooms")

	// A failed stage writes nothing.
	_, ok := rc.State.Get("hotel_options")
	assert.False(t, ok)
}

func TestStage_Run_TransportError(t *testing.T) {
	sentinel := errors.New("connection reset")
	collab := newScriptedTool("get_weather")
	collab.errs = []error{sentinel}

	stage := NewStage("weather_fetcher", "weather_forecast", collab)

	err := stage.Run(newRunContext(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var collabErr *core.CollaboratorError
	assert.ErrorAs(t, err, &collabErr)
}

func TestStage_Run_PanicConvertedToStageError(t *testing.T) {
	panicky := tool.NewFunctionTool("boomer", "panics", func(context.Context, map[string]any) (tool.Result, error) {
		panic("unexpected fault")
	})

	stage := NewStage("panicky_stage", "out", panicky)

	err := stage.Run(newRunContext(nil))
	require.Error(t, err)

	var stageErr *core.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Contains(t, stageErr.Error(), "panic")
}

func TestStage_Run_TextualResultWrittenRaw(t *testing.T) {
	collab := newScriptedTool("summarizer", tool.Result{Status: tool.StatusSuccess, Message: "plain text answer"})
	stage := NewStage("summary", "summary_out", collab)

	rc := newRunContext(nil)
	require.NoError(t, stage.Run(rc))

	v, _ := rc.State.Get("summary_out")
	assert.Equal(t, "plain text answer", v)
}

func TestStage_Run_PendingResultWrittenThrough(t *testing.T) {
	collab := newScriptedTool("request_human_approval", tool.Pending(map[string]any{"approved": false}))
	stage := NewStage("human_approval", "approval_status", collab)

	rc := newRunContext(nil)
	require.NoError(t, stage.Run(rc))

	v, ok := rc.State.Get("approval_status")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"approved": false}, v)
}

func TestStage_Run_CancelledContext(t *testing.T) {
	collab := newScriptedTool("noop", tool.Success(map[string]any{}))
	stage := NewStage("noop_stage", "out", collab)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rc := core.NewRunContext(ctx, nil, nil)

	err := stage.Run(rc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, collab.Calls())
}
