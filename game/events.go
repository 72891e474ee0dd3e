// game/events.go
package game

import (
	"github.com/wfunc/wordrush/rounds"
	"github.com/wfunc/wordrush/state"
	"github.com/wfunc/wordrush/words"
)

// Event is a notification emitted by the engine after it reconciles a
// manager mutation. Events are delivered synchronously, in order, to the
// single registered observer. Observers must not call back into the engine.
type Event interface {
	isEvent()
}

// PhaseChanged fires on every phase transition.
type PhaseChanged struct {
	From   state.Phase
	To     state.Phase
	Reason rounds.TransitionReason
}

// TimerTick fires once per countdown second while playing.
type TimerTick struct {
	Remaining int
}

// TimerExpired fires when the turn clock runs out.
type TimerExpired struct {
	Team rounds.Team
}

// WordChanged fires when a new word is drawn for guessing.
type WordChanged struct {
	Word words.Word
}

// WordSkipped fires when the active word is requeued.
type WordSkipped struct {
	Word words.Word
}

// WordTimeRecorded fires when display time is attributed to a word.
type WordTimeRecorded struct {
	WordID  string
	Seconds float64
}

// ScoreChanged fires after a correct guess is scored.
type ScoreChanged struct {
	Team  rounds.Team
	Score int
}

// TurnEnded fires when a team's timed turn closes, carrying the cumulative
// score snapshot that entered the turn history and the seconds just
// attributed to the closing interval.
type TurnEnded struct {
	Team    rounds.Team
	Score   int
	Elapsed float64
}

// GameEnded fires on the transition to the game-over phase.
type GameEnded struct {
	Winner rounds.Team
	Tie    bool
}

func (PhaseChanged) isEvent()     {}
func (TimerTick) isEvent()        {}
func (TimerExpired) isEvent()     {}
func (WordChanged) isEvent()      {}
func (WordSkipped) isEvent()      {}
func (WordTimeRecorded) isEvent() {}
func (ScoreChanged) isEvent()     {}
func (TurnEnded) isEvent()        {}
func (GameEnded) isEvent()        {}
