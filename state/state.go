// state/state.go
package state

import (
	"errors"
	"sync"
)

// Phase is one stage of the game lifecycle.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseWordInput
	PhaseGameOverview
	PhasePlaying
	PhaseRoundTransition
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseWordInput:
		return "word_input"
	case PhaseGameOverview:
		return "game_overview"
	case PhasePlaying:
		return "playing"
	case PhaseRoundTransition:
		return "round_transition"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ErrTransitionNotAllowed is returned when a phase transition is not allowed.
var ErrTransitionNotAllowed = errors.New("phase transition not allowed")

// Hook runs on entering or leaving a phase.
type Hook func(from, to Phase)

// Machine is a phase state machine with an explicit legal-edge table.
// Transitions not registered with AddTransition are rejected, which is how
// invalid operations for the current phase degrade to no-ops upstream.
type Machine struct {
	current     Phase
	transitions map[Phase]map[Phase]func() bool
	onEnter     map[Phase]Hook
	onExit      map[Phase]Hook
	mutex       sync.RWMutex
}

func NewMachine(initial Phase) *Machine {
	return &Machine{
		current:     initial,
		transitions: make(map[Phase]map[Phase]func() bool),
		onEnter:     make(map[Phase]Hook),
		onExit:      make(map[Phase]Hook),
	}
}

// AddTransition registers a legal edge. A nil condition always allows the
// transition; a non-nil condition is consulted at transition time.
func (m *Machine) AddTransition(from, to Phase, condition func() bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[Phase]func() bool)
	}
	m.transitions[from][to] = condition
}

// OnEnter registers a hook fired after entering the phase.
func (m *Machine) OnEnter(p Phase, hook Hook) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onEnter[p] = hook
}

// OnExit registers a hook fired before leaving the phase.
func (m *Machine) OnExit(p Phase, hook Hook) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onExit[p] = hook
}

// Transition moves the machine to the target phase if the edge is legal and
// its condition holds. On rejection the current phase is untouched.
func (m *Machine) Transition(to Phase) error {
	m.mutex.Lock()

	edges, ok := m.transitions[m.current]
	if !ok {
		m.mutex.Unlock()
		return ErrTransitionNotAllowed
	}
	condition, ok := edges[to]
	if !ok {
		m.mutex.Unlock()
		return ErrTransitionNotAllowed
	}
	if condition != nil && !condition() {
		m.mutex.Unlock()
		return ErrTransitionNotAllowed
	}

	from := m.current
	exitHook := m.onExit[from]
	enterHook := m.onEnter[to]
	m.current = to
	m.mutex.Unlock()

	if exitHook != nil {
		exitHook(from, to)
	}
	if enterHook != nil {
		enterHook(from, to)
	}
	return nil
}

// Current returns the active phase.
func (m *Machine) Current() Phase {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

// Is reports whether the machine sits in the given phase.
func (m *Machine) Is(p Phase) bool {
	return m.Current() == p
}

// Force sets the phase without consulting the edge table. Reserved for
// resetting a finished game back to its starting phase.
func (m *Machine) Force(p Phase) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.current = p
}
