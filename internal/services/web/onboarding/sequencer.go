// Package onboarding walks a visitor through linking their Discord identity,
// guild, Battle.net identity and WoW character.
package onboarding

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/eighthwonder/eighthwonder/internal/services/web/onboarding"

// Step is one state of the onboarding flow.
type Step string

const (
	StepLoading                 Step = "LOADING"
	StepDiscordAuthentication   Step = "DISCORD_AUTHENTICATION"
	StepDiscordAssociation      Step = "DISCORD_ASSOCIATION"
	StepBattleNetAuthentication Step = "BATTLENET_AUTHENTICATION"
	StepCharacterAssociation    Step = "CHARACTER_ASSOCIATION"
	StepCompleted               Step = "COMPLETED"
)

// Loader prepares a step and reports whether the visitor can skip past it.
type Loader func(context.Context) (skippable bool, err error)

// Transition is the loader run when leaving a step and the step that follows.
type Transition struct {
	Load Loader
	Next Step
}

// Sequencer is a linear state machine over Steps.
type Sequencer struct {
	transitions map[Step]Transition

	run     sync.Mutex
	mu      sync.Mutex
	current Step
	loading atomic.Bool
}

// NewSequencer starts at start with the given transitions.
func NewSequencer(start Step, transitions map[Step]Transition) *Sequencer {
	copied := make(map[Step]Transition, len(transitions))
	for step, transition := range transitions {
		copied[step] = transition
	}
	return &Sequencer{transitions: copied, current: start}
}

// Current returns the step surfaced to the visitor.
func (s *Sequencer) Current() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Loading reports whether a LoadNextStep call is running.
func (s *Sequencer) Loading() bool { return s.loading.Load() }

// LoadNextStep runs the loader of the current step and advances. It keeps
// advancing without returning while loaders report skippable, and stops at
// the first step whose loader does not, or at a step without a transition.
// A loader error is returned and leaves the current step unchanged.
// Calls are serialized.
func (s *Sequencer) LoadNextStep(ctx context.Context) (Step, error) {
	s.run.Lock()
	defer s.run.Unlock()
	s.loading.Store(true)
	defer s.loading.Store(false)

	tracer := otel.Tracer(tracerName)
	for {
		current := s.Current()
		transition, ok := s.transitions[current]
		if !ok || transition.Load == nil {
			return current, nil
		}

		stepCtx, span := tracer.Start(ctx, "onboarding.load")
		span.SetAttributes(
			attribute.String("onboarding.step", string(current)),
			attribute.String("onboarding.next", string(transition.Next)),
		)
		skippable, err := transition.Load(stepCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return current, err
		}
		span.SetAttributes(attribute.Bool("onboarding.skippable", skippable))
		span.End()

		s.mu.Lock()
		s.current = transition.Next
		s.mu.Unlock()

		if !skippable {
			return transition.Next, nil
		}
	}
}
