package state

import (
	"testing"
)

func TestMachine_InitialPhase(t *testing.T) {
	m := NewMachine(PhaseSetup)

	if m.Current() != PhaseSetup {
		t.Errorf("Expected initial phase %s, got %s", PhaseSetup, m.Current())
	}
	if !m.Is(PhaseSetup) {
		t.Error("Is should report the initial phase")
	}
}

func TestMachine_Transition(t *testing.T) {
	m := NewMachine(PhaseSetup)
	m.AddTransition(PhaseSetup, PhaseWordInput, nil)

	if err := m.Transition(PhaseWordInput); err != nil {
		t.Fatalf("Transition should not return an error, but got: %v", err)
	}
	if m.Current() != PhaseWordInput {
		t.Errorf("Expected phase %s, got %s", PhaseWordInput, m.Current())
	}
}

func TestMachine_RejectsUnregisteredEdge(t *testing.T) {
	m := NewMachine(PhaseSetup)
	m.AddTransition(PhaseSetup, PhaseWordInput, nil)

	err := m.Transition(PhasePlaying)
	if err != ErrTransitionNotAllowed {
		t.Errorf("Expected ErrTransitionNotAllowed, got: %v", err)
	}
	if m.Current() != PhaseSetup {
		t.Errorf("Phase should be untouched after a rejected transition, got %s", m.Current())
	}
}

func TestMachine_ConditionBlocksTransition(t *testing.T) {
	allowed := false
	m := NewMachine(PhaseWordInput)
	m.AddTransition(PhaseWordInput, PhaseGameOverview, func() bool { return allowed })

	if err := m.Transition(PhaseGameOverview); err != ErrTransitionNotAllowed {
		t.Errorf("Expected ErrTransitionNotAllowed while condition is false, got: %v", err)
	}
	if m.Current() != PhaseWordInput {
		t.Errorf("Phase should remain %s, got %s", PhaseWordInput, m.Current())
	}

	allowed = true
	if err := m.Transition(PhaseGameOverview); err != nil {
		t.Errorf("Expected transition once condition holds, got: %v", err)
	}
	if m.Current() != PhaseGameOverview {
		t.Errorf("Expected phase %s, got %s", PhaseGameOverview, m.Current())
	}
}

func TestMachine_Hooks(t *testing.T) {
	m := NewMachine(PhaseSetup)
	m.AddTransition(PhaseSetup, PhaseWordInput, nil)

	var exited, entered bool
	m.OnExit(PhaseSetup, func(from, to Phase) {
		exited = true
		if from != PhaseSetup || to != PhaseWordInput {
			t.Errorf("Exit hook got %s -> %s", from, to)
		}
	})
	m.OnEnter(PhaseWordInput, func(from, to Phase) {
		entered = true
	})

	if err := m.Transition(PhaseWordInput); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if !exited {
		t.Error("Expected the exit hook to fire")
	}
	if !entered {
		t.Error("Expected the enter hook to fire")
	}
}

func TestMachine_HooksSkippedOnRejection(t *testing.T) {
	m := NewMachine(PhaseSetup)

	fired := false
	m.OnExit(PhaseSetup, func(from, to Phase) { fired = true })

	if err := m.Transition(PhaseGameOver); err != ErrTransitionNotAllowed {
		t.Fatalf("Expected rejection, got: %v", err)
	}
	if fired {
		t.Error("Hooks must not fire on a rejected transition")
	}
}

func TestMachine_Force(t *testing.T) {
	m := NewMachine(PhaseGameOver)
	m.Force(PhaseSetup)

	if m.Current() != PhaseSetup {
		t.Errorf("Force should set the phase directly, got %s", m.Current())
	}
}
