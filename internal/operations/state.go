package operations

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"

	"ecopanel/internal/config"
	apperrors "ecopanel/internal/errors"
)

// RunStatus is the overall status of a pipeline run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// State is the shared state of one pipeline run. Steps communicate through
// it: each step reads the frames earlier steps stored and stores its own.
type State struct {
	mu sync.RWMutex

	ID        string
	Status    RunStatus
	StartTime time.Time
	EndTime   *time.Time

	Config *config.Config
	Paths  *config.Paths

	Steps map[string]*StepState

	frames map[string]dataframe.DataFrame
	meta   map[string]any

	Err error
}

// NewState creates a pending run state.
func NewState(id string, cfg *config.Config, paths *config.Paths) *State {
	return &State{
		ID:        id,
		Status:    RunStatusPending,
		StartTime: time.Now(),
		Config:    cfg,
		Paths:     paths,
		Steps:     make(map[string]*StepState),
		frames:    make(map[string]dataframe.DataFrame),
		meta:      make(map[string]any),
	}
}

// Start marks the run as running.
func (s *State) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed.
func (s *State) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCompleted
}

// Fail marks the run as failed.
func (s *State) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusFailed
	s.Err = err
}

// Cancel marks the run as cancelled.
func (s *State) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCancelled
}

// SetStep registers the runtime state of a step.
func (s *State) SetStep(id string, step *StepState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Steps[id] = step
}

// Step returns the runtime state of a step, if registered.
func (s *State) Step(id string) *StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Steps[id]
}

// SetFrame stores a named dataframe for later steps.
func (s *State) SetFrame(name string, df dataframe.DataFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[name] = df
}

// Frame returns a named dataframe if an earlier step stored it.
func (s *State) Frame(name string) (dataframe.DataFrame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	df, ok := s.frames[name]
	return df, ok
}

// RequireFrame returns a named dataframe or a structured missing-input error
// naming the step that asked.
func (s *State) RequireFrame(stepID, name string) (dataframe.DataFrame, error) {
	df, ok := s.Frame(name)
	if !ok {
		return dataframe.DataFrame{}, apperrors.NewStageError(stepID, apperrors.CodeMissingInput,
			fmt.Sprintf("required table %q was not produced by an earlier step", name))
	}
	return df, nil
}

// FrameNames lists the stored frames, for run summaries.
func (s *State) FrameNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.frames))
	for name := range s.frames {
		names = append(names, name)
	}
	return names
}

// SetMeta records a run-level fact (row counts, dropped columns, paths).
func (s *State) SetMeta(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[key] = value
}

// Meta returns a run-level fact.
func (s *State) Meta(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.meta[key]
	return v, ok
}

// MetaInt returns an int fact, zero when absent or of another type.
func (s *State) MetaInt(key string) int {
	v, ok := s.Meta(key)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}

// Duration returns how long the run has been going, or took.
func (s *State) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}

// HasFailures reports whether any step failed.
func (s *State) HasFailures() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, step := range s.Steps {
		if step.CurrentStatus() == StepStatusFailed {
			return true
		}
	}
	return false
}
