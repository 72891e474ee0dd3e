// score/score.go
package score

import (
	"github.com/wfunc/wordrush/rounds"
)

// Manager keeps each team's running score, turn counter, and the ordered
// history of cumulative score snapshots taken when turns end. Index 0 of
// each history is always the pre-game baseline of 0.
type Manager struct {
	scores  map[rounds.Team]int
	turns   map[rounds.Team]int
	history map[rounds.Team][]int
}

func NewManager() *Manager {
	m := &Manager{}
	m.Reset()
	return m
}

// IncrementScore adds one correct guess to the team's score and bumps its
// turn counter.
func (m *Manager) IncrementScore(team rounds.Team) {
	m.scores[team]++
	m.turns[team]++
}

// RecordTeamTurnScore appends the team's cumulative score at turn end.
// The value is the running total, never a delta.
func (m *Manager) RecordTeamTurnScore(team rounds.Team, score int) {
	m.history[team] = append(m.history[team], score)
}

// Score returns the team's running total.
func (m *Manager) Score(team rounds.Team) int {
	return m.scores[team]
}

// TurnGuesses reports how many correct guesses the team has made in its
// current turn.
func (m *Manager) TurnGuesses(team rounds.Team) int {
	return m.turns[team]
}

// ResetTurnGuesses zeroes the team's per-turn guess counter at turn end.
func (m *Manager) ResetTurnGuesses(team rounds.Team) {
	m.turns[team] = 0
}

// TurnHistory returns a copy of the team's turn-end snapshots.
func (m *Manager) TurnHistory(team rounds.Team) []int {
	h := m.history[team]
	out := make([]int, len(h))
	copy(out, h)
	return out
}

// Winner returns the team with the strictly higher score. tie is true when
// the scores are equal, in which case the returned team is meaningless.
func (m *Manager) Winner() (winner rounds.Team, tie bool) {
	s1, s2 := m.scores[rounds.Team1], m.scores[rounds.Team2]
	switch {
	case s1 > s2:
		return rounds.Team1, false
	case s2 > s1:
		return rounds.Team2, false
	default:
		return 0, true
	}
}

// Reset zeroes both scores and seeds both histories with the 0 baseline.
func (m *Manager) Reset() {
	m.scores = map[rounds.Team]int{rounds.Team1: 0, rounds.Team2: 0}
	m.turns = map[rounds.Team]int{rounds.Team1: 0, rounds.Team2: 0}
	m.history = map[rounds.Team][]int{
		rounds.Team1: {0},
		rounds.Team2: {0},
	}
}
