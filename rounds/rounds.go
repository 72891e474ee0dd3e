// rounds/rounds.go
package rounds

// Round is one of the three fixed guessing-rule stages, played in order.
type Round int

const (
	RoundDescribe Round = iota
	RoundActOut
	RoundOneWord
)

// NumRounds is the number of stages in a full game.
const NumRounds = 3

func (r Round) String() string {
	switch r {
	case RoundDescribe:
		return "describe"
	case RoundActOut:
		return "act_out"
	case RoundOneWord:
		return "one_word"
	default:
		return "unknown"
	}
}

// IsFinal reports whether r has no successor.
func (r Round) IsFinal() bool {
	return r == RoundOneWord
}

// Team identifies one of the two teams.
type Team int

const (
	Team1 Team = 1
	Team2 Team = 2
)

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == Team1 {
		return Team2
	}
	return Team1
}

// TransitionReason records why the last phase change out of play happened.
type TransitionReason int

const (
	ReasonNone TransitionReason = iota
	ReasonTimerExpired
	ReasonWordsExhausted
)

func (r TransitionReason) String() string {
	switch r {
	case ReasonTimerExpired:
		return "timer_expired"
	case ReasonWordsExhausted:
		return "words_exhausted"
	default:
		return "none"
	}
}

// Manager tracks round progression, team turn order, the last transition
// reason, and the ids of words already guessed in the current round by
// either team.
type Manager struct {
	round     Round
	team      Team
	reason    TransitionReason
	usedWords map[string]struct{}
}

func NewManager() *Manager {
	return &Manager{
		round:     RoundDescribe,
		team:      Team1,
		usedWords: make(map[string]struct{}),
	}
}

func (m *Manager) Round() Round { return m.round }

func (m *Manager) Team() Team { return m.team }

func (m *Manager) Reason() TransitionReason { return m.reason }

func (m *Manager) SetReason(r TransitionReason) { m.reason = r }

// AdvanceRound moves to the next stage and clears the used-word set so every
// word is available again. At the final stage it is a safe no-op and reports
// false.
func (m *Manager) AdvanceRound() bool {
	if m.round.IsFinal() {
		return false
	}
	m.round++
	m.usedWords = make(map[string]struct{})
	return true
}

// SwitchTeam toggles the active team unconditionally.
func (m *Manager) SwitchTeam() {
	m.team = m.team.Other()
}

// ResetToFirstRound restores the game-start position: first round, team 1,
// no used words, no transition reason.
func (m *Manager) ResetToFirstRound() {
	m.round = RoundDescribe
	m.team = Team1
	m.reason = ReasonNone
	m.usedWords = make(map[string]struct{})
}

// MarkWordUsed records a correctly guessed word id for the current round.
func (m *Manager) MarkWordUsed(id string) {
	m.usedWords[id] = struct{}{}
}

// UsedWordIDs returns a copy of the current round's used-word set.
func (m *Manager) UsedWordIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(m.usedWords))
	for id := range m.usedWords {
		out[id] = struct{}{}
	}
	return out
}

// UsedCount reports how many words the current round has consumed.
func (m *Manager) UsedCount() int {
	return len(m.usedWords)
}
