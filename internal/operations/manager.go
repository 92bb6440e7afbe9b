package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// RunOptions selects which registered steps a run executes.
type RunOptions struct {
	// From skips every step before the named one. Empty means run from the
	// first step.
	From string
	// Only restricts the run to the named steps, keeping registration order.
	Only []string
}

// Manager executes registered steps in order against a shared state.
type Manager struct {
	steps  []Step
	logger *slog.Logger
	tracer trace.Tracer
}

// NewManager creates a manager. A nil tracer disables tracing.
func NewManager(logger *slog.Logger, tracer trace.Tracer) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("ecopanel")
	}
	return &Manager{logger: logger, tracer: tracer}
}

// Register appends a step to the run order.
func (m *Manager) Register(step Step) {
	m.steps = append(m.steps, step)
}

// Steps returns the registered steps in run order.
func (m *Manager) Steps() []Step {
	return m.steps
}

// selectSteps resolves RunOptions against the registered steps.
func (m *Manager) selectSteps(opts RunOptions) ([]Step, error) {
	selected := m.steps

	if opts.From != "" {
		idx := -1
		for i, step := range selected {
			if step.ID() == opts.From {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("unknown step %q", opts.From)
		}
		selected = selected[idx:]
	}

	if len(opts.Only) > 0 {
		want := make(map[string]bool, len(opts.Only))
		for _, id := range opts.Only {
			want[id] = true
		}
		var filtered []Step
		for _, step := range selected {
			if want[step.ID()] {
				filtered = append(filtered, step)
				delete(want, step.ID())
			}
		}
		for id := range want {
			return nil, fmt.Errorf("unknown step %q", id)
		}
		selected = filtered
	}

	return selected, nil
}

// Run executes the selected steps sequentially, stopping at the first
// failure. The returned state always reflects every step that started.
func (m *Manager) Run(ctx context.Context, state *State, opts RunOptions) error {
	steps, err := m.selectSteps(opts)
	if err != nil {
		return err
	}

	state.Start()
	m.logger.InfoContext(ctx, "pipeline run started",
		slog.String("run_id", state.ID),
		slog.Int("step_count", len(steps)))

	for _, step := range steps {
		stepState := NewStepState(step.ID(), step.Name())
		state.SetStep(step.ID(), stepState)

		if err := ctx.Err(); err != nil {
			stepState.Skip("run cancelled")
			state.Cancel()
			return err
		}

		if err := m.runStep(ctx, step, state, stepState); err != nil {
			state.Fail(err)
			m.logger.ErrorContext(ctx, "pipeline run failed",
				slog.String("run_id", state.ID),
				slog.String("step", step.ID()),
				slog.Duration("elapsed", state.Duration()),
				slog.String("error", err.Error()))
			return err
		}
	}

	state.Complete()
	m.logger.InfoContext(ctx, "pipeline run completed",
		slog.String("run_id", state.ID),
		slog.Duration("elapsed", state.Duration()))
	return nil
}

func (m *Manager) runStep(ctx context.Context, step Step, state *State, stepState *StepState) error {
	ctx, span := m.tracer.Start(ctx, "step."+step.ID(),
		trace.WithAttributes(
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
			attribute.String("run.id", state.ID),
		))
	defer span.End()

	m.logger.InfoContext(ctx, "step started",
		slog.String("step", step.ID()),
		slog.String("name", step.Name()))

	if err := step.Validate(state); err != nil {
		err = fmt.Errorf("step %s validation failed: %w", step.ID(), err)
		stepState.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	stepState.Start()
	start := time.Now()

	if err := step.Execute(ctx, state); err != nil {
		stepState.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("step %s failed: %w", step.ID(), err)
	}

	stepState.Complete()
	span.SetStatus(codes.Ok, "")
	m.logger.InfoContext(ctx, "step completed",
		slog.String("step", step.ID()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
