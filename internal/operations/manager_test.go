package operations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ecopanel/internal/errors"
)

type fakeStep struct {
	BaseStep
	execute  func(ctx context.Context, state *State) error
	validate func(state *State) error
}

func (f *fakeStep) Execute(ctx context.Context, state *State) error {
	if f.execute == nil {
		return nil
	}
	return f.execute(ctx, state)
}

func (f *fakeStep) Validate(state *State) error {
	if f.validate == nil {
		return nil
	}
	return f.validate(state)
}

func newFakeStep(id string, execute func(ctx context.Context, state *State) error) *fakeStep {
	return &fakeStep{BaseStep: NewBaseStep(id, id), execute: execute}
}

func newTestState() *State {
	return NewState("test-run", nil, nil)
}

func TestManagerRunsStepsInOrder(t *testing.T) {
	var order []string
	m := NewManager(nil, nil)
	for _, id := range []string{"first", "second", "third"} {
		id := id
		m.Register(newFakeStep(id, func(ctx context.Context, state *State) error {
			order = append(order, id)
			return nil
		}))
	}

	state := newTestState()
	require.NoError(t, m.Run(context.Background(), state, RunOptions{}))

	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, RunStatusCompleted, state.Status)
	for _, id := range order {
		assert.Equal(t, StepStatusCompleted, state.Step(id).CurrentStatus())
	}
}

func TestManagerStopsOnFailure(t *testing.T) {
	var ran []string
	m := NewManager(nil, nil)
	m.Register(newFakeStep("ok", func(ctx context.Context, state *State) error {
		ran = append(ran, "ok")
		return nil
	}))
	m.Register(newFakeStep("boom", func(ctx context.Context, state *State) error {
		return errors.New("broken")
	}))
	m.Register(newFakeStep("after", func(ctx context.Context, state *State) error {
		ran = append(ran, "after")
		return nil
	}))

	state := newTestState()
	err := m.Run(context.Background(), state, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step boom failed")

	assert.Equal(t, []string{"ok"}, ran)
	assert.Equal(t, RunStatusFailed, state.Status)
	assert.Equal(t, StepStatusFailed, state.Step("boom").CurrentStatus())
	assert.True(t, state.HasFailures())
	assert.Nil(t, state.Step("after"))
}

func TestManagerValidationFailure(t *testing.T) {
	m := NewManager(nil, nil)
	step := newFakeStep("guarded", nil)
	step.validate = func(state *State) error { return errors.New("input missing") }
	m.Register(step)

	state := newTestState()
	err := m.Run(context.Background(), state, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Equal(t, StepStatusFailed, state.Step("guarded").CurrentStatus())
}

func TestManagerRunFrom(t *testing.T) {
	var ran []string
	m := NewManager(nil, nil)
	for _, id := range []string{"a", "b", "c"} {
		id := id
		m.Register(newFakeStep(id, func(ctx context.Context, state *State) error {
			ran = append(ran, id)
			return nil
		}))
	}

	require.NoError(t, m.Run(context.Background(), newTestState(), RunOptions{From: "b"}))
	assert.Equal(t, []string{"b", "c"}, ran)

	err := m.Run(context.Background(), newTestState(), RunOptions{From: "nope"})
	require.Error(t, err)
}

func TestManagerRunOnly(t *testing.T) {
	var ran []string
	m := NewManager(nil, nil)
	for _, id := range []string{"a", "b", "c"} {
		id := id
		m.Register(newFakeStep(id, func(ctx context.Context, state *State) error {
			ran = append(ran, id)
			return nil
		}))
	}

	require.NoError(t, m.Run(context.Background(), newTestState(), RunOptions{Only: []string{"c", "a"}}))
	// Registration order wins over request order.
	assert.Equal(t, []string{"a", "c"}, ran)

	err := m.Run(context.Background(), newTestState(), RunOptions{Only: []string{"missing"}})
	require.Error(t, err)
}

func TestManagerCancelledContext(t *testing.T) {
	m := NewManager(nil, nil)
	m.Register(newFakeStep("never", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := newTestState()
	err := m.Run(ctx, state, RunOptions{})
	require.Error(t, err)
	assert.Equal(t, RunStatusCancelled, state.Status)
	assert.Equal(t, StepStatusSkipped, state.Step("never").CurrentStatus())
}

func TestStatePassesFramesBetweenSteps(t *testing.T) {
	df := dataframe.New(series.New([]string{"France"}, series.String, "country"))

	m := NewManager(nil, nil)
	m.Register(newFakeStep("producer", func(ctx context.Context, state *State) error {
		state.SetFrame(FrameMerged, df)
		return nil
	}))
	m.Register(newFakeStep("consumer", func(ctx context.Context, state *State) error {
		got, err := state.RequireFrame("consumer", FrameMerged)
		if err != nil {
			return err
		}
		state.SetMeta(MetaRowsMerged, got.Nrow())
		return nil
	}))

	state := newTestState()
	require.NoError(t, m.Run(context.Background(), state, RunOptions{}))
	assert.Equal(t, 1, state.MetaInt(MetaRowsMerged))
	assert.Contains(t, state.FrameNames(), FrameMerged)
}

func TestRequireFrameMissing(t *testing.T) {
	state := newTestState()
	_, err := state.RequireFrame("merging", FrameCO2Clean)
	require.Error(t, err)

	stageErr, ok := apperrors.IsStageError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMissingInput, stageErr.Code)
	assert.Equal(t, "merging", stageErr.Stage)
}

func TestStepStateLifecycle(t *testing.T) {
	s := NewStepState("cleaning", "Dataset Cleaning")
	assert.Equal(t, StepStatusPending, s.CurrentStatus())

	s.Start()
	assert.Equal(t, StepStatusActive, s.CurrentStatus())

	s.UpdateProgress(50, "halfway")
	assert.InDelta(t, 50.0, s.Progress, 1e-9)

	s.Complete()
	assert.Equal(t, StepStatusCompleted, s.CurrentStatus())
	assert.InDelta(t, 100.0, s.Progress, 1e-9)
	assert.GreaterOrEqual(t, s.Duration(), time.Duration(0))
}
