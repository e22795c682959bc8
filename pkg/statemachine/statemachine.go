package statemachine

import (
	"context"
	"sync"
)

// StateFn represents a state function following Rob Pike's pattern. Each
// state acts on the entity and returns the next state, or nil when the
// machine is done.
type StateFn[T any] func(*T) StateFn[T]

// StateMachine is a simple, thread-safe state machine wrapper following Rob
// Pike's pattern. The transitions are the state functions themselves.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	steps   int
	mutex   sync.RWMutex
}

// NewStateMachine creates a new state machine for the given entity
func NewStateMachine[T any](entity *T, initialStateFn StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{
		entity:  entity,
		stateFn: initialStateFn,
	}
}

// Dispatch runs one state function and moves to the state it returns.
// stateFn is optional: when nil the current state is run.
func (sm *StateMachine[T]) Dispatch(stateFn StateFn[T]) {
	sm.mutex.Lock()
	if stateFn != nil {
		sm.stateFn = stateFn
	}
	currentStateFn := sm.stateFn
	sm.mutex.Unlock()

	if currentStateFn == nil {
		return
	}

	nextStateFn := currentStateFn(sm.entity)

	sm.mutex.Lock()
	sm.stateFn = nextStateFn
	sm.steps++
	sm.mutex.Unlock()
}

// Run dispatches states until one returns nil or ctx is done. It returns
// the context error in the latter case.
func (sm *StateMachine[T]) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sm.CurrentState() == nil {
			return nil
		}
		sm.Dispatch(nil)
	}
}

// CurrentState returns the current state function (thread-safe)
func (sm *StateMachine[T]) CurrentState() StateFn[T] {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.stateFn
}

// SetState sets the state function without running it.
func (sm *StateMachine[T]) SetState(stateFn StateFn[T]) {
	sm.mutex.Lock()
	sm.stateFn = stateFn
	sm.mutex.Unlock()
}

// Reset points the machine at a new entity and initial state and clears the
// step counter, so one machine can be reused across runs.
func (sm *StateMachine[T]) Reset(entity *T, initialStateFn StateFn[T]) {
	sm.mutex.Lock()
	sm.entity = entity
	sm.stateFn = initialStateFn
	sm.steps = 0
	sm.mutex.Unlock()
}

// Steps returns the number of states run since creation or the last Reset.
func (sm *StateMachine[T]) Steps() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.steps
}
