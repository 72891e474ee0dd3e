package rounds

import (
	"testing"
)

func TestManager_InitialState(t *testing.T) {
	m := NewManager()

	if m.Round() != RoundDescribe {
		t.Errorf("Expected first round %s, got %s", RoundDescribe, m.Round())
	}
	if m.Team() != Team1 {
		t.Errorf("Expected team 1 to start, got %d", m.Team())
	}
	if m.Reason() != ReasonNone {
		t.Errorf("Expected no transition reason, got %s", m.Reason())
	}
}

func TestManager_AdvanceRound(t *testing.T) {
	m := NewManager()
	m.MarkWordUsed("w1")

	if !m.AdvanceRound() {
		t.Fatal("Advance from the first round should succeed")
	}
	if m.Round() != RoundActOut {
		t.Errorf("Expected round %s, got %s", RoundActOut, m.Round())
	}
	if m.UsedCount() != 0 {
		t.Error("Advancing a round must clear the used-word set")
	}

	if !m.AdvanceRound() {
		t.Fatal("Advance to the final round should succeed")
	}
	if m.Round() != RoundOneWord {
		t.Errorf("Expected round %s, got %s", RoundOneWord, m.Round())
	}

	if m.AdvanceRound() {
		t.Error("Advance past the final round should be a no-op")
	}
	if m.Round() != RoundOneWord {
		t.Errorf("Final round must be stable, got %s", m.Round())
	}
}

func TestManager_SwitchTeam(t *testing.T) {
	m := NewManager()

	m.SwitchTeam()
	if m.Team() != Team2 {
		t.Errorf("Expected team 2 after switch, got %d", m.Team())
	}
	m.SwitchTeam()
	if m.Team() != Team1 {
		t.Errorf("Expected team 1 after second switch, got %d", m.Team())
	}
}

func TestManager_UsedWordSet(t *testing.T) {
	m := NewManager()
	m.MarkWordUsed("w1")
	m.MarkWordUsed("w2")

	used := m.UsedWordIDs()
	if len(used) != 2 {
		t.Fatalf("Expected 2 used ids, got %d", len(used))
	}

	// The returned set is a copy.
	used["w3"] = struct{}{}
	if m.UsedCount() != 2 {
		t.Error("Mutating the returned set must not affect the manager")
	}
}

func TestManager_ResetToFirstRound(t *testing.T) {
	m := NewManager()
	m.AdvanceRound()
	m.SwitchTeam()
	m.SetReason(ReasonTimerExpired)
	m.MarkWordUsed("w1")

	m.ResetToFirstRound()

	if m.Round() != RoundDescribe || m.Team() != Team1 {
		t.Errorf("Reset should restore first round and team 1, got %s team %d", m.Round(), m.Team())
	}
	if m.Reason() != ReasonNone {
		t.Errorf("Reset should clear the transition reason, got %s", m.Reason())
	}
	if m.UsedCount() != 0 {
		t.Error("Reset should clear the used-word set")
	}
}

func TestRound_IsFinal(t *testing.T) {
	if RoundDescribe.IsFinal() || RoundActOut.IsFinal() {
		t.Error("Only the one-word round is final")
	}
	if !RoundOneWord.IsFinal() {
		t.Error("The one-word round should be final")
	}
}

func TestTeam_Other(t *testing.T) {
	if Team1.Other() != Team2 || Team2.Other() != Team1 {
		t.Error("Other should toggle between the two teams")
	}
}
