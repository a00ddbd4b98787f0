// Package wizard implements the three-step product editing wizard.
//
// State transitions are pure functions over State so they can be exercised
// without any rendering or transport in front of them.
package wizard

import "fmt"

// Step is one page of the wizard.
type Step int

const (
	StepDetails Step = iota
	StepSpecification
	StepReviews

	stepCount = 3
)

// FirstStep and LastStep bound the valid steps.
const (
	FirstStep = StepDetails
	LastStep  = StepReviews
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepSpecification:
		return "specification"
	case StepReviews:
		return "reviews"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is within the wizard bounds.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// State is the navigation state of a wizard.
// Visited steps only ever accumulate.
type State struct {
	Current Step
	Dirty   bool
	visited [stepCount]bool
}

// NewState returns the initial state: on the first step, which counts as visited.
func NewState() State {
	s := State{Current: FirstStep}
	s.visited[FirstStep] = true
	return s
}

// Visited reports whether the step has been reached before.
func (s State) Visited(step Step) bool {
	return step.Valid() && s.visited[step]
}

// VisitedSteps returns the visited steps in order.
func (s State) VisitedSteps() []Step {
	steps := make([]Step, 0, stepCount)
	for step := FirstStep; step <= LastStep; step++ {
		if s.visited[step] {
			steps = append(steps, step)
		}
	}
	return steps
}

// CanJumpTo reports whether JumpTo(step) would move the wizard.
func (s State) CanJumpTo(step Step) bool {
	return s.Visited(step) && step != s.Current
}

// Advance moves to the next step when the current one validated.
// It is a no-op on the last step or when valid is false.
func (s State) Advance(valid bool) (State, bool) {
	return s.moveTo(s.Current+1, valid)
}

// Retreat moves to the previous step without validation. No-op on the first step.
func (s State) Retreat() (State, bool) {
	return s.moveTo(s.Current-1, true)
}

// JumpTo moves to a previously visited step other than the current one.
func (s State) JumpTo(step Step) (State, bool) {
	if !s.CanJumpTo(step) {
		return s, false
	}
	return s.moveTo(step, true)
}

// MarkDirty records that a field changed since the wizard was opened.
func (s State) MarkDirty() State {
	s.Dirty = true
	return s
}

func (s State) moveTo(next Step, allowed bool) (State, bool) {
	// out-of-range requests are ignored, not errors
	if !allowed || !next.Valid() {
		return s, false
	}
	s.Current = next
	s.visited[next] = true
	return s, true
}
