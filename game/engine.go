// game/engine.go
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wfunc/wordrush/analytics"
	"github.com/wfunc/wordrush/logger"
	"github.com/wfunc/wordrush/rounds"
	"github.com/wfunc/wordrush/score"
	"github.com/wfunc/wordrush/state"
	"github.com/wfunc/wordrush/timer"
	"github.com/wfunc/wordrush/words"
)

// Settings are the tunable game rules.
type Settings struct {
	TurnSeconds int
	MinWords    int
	SkipEnabled bool
}

// DefaultSettings mirror the config defaults.
func DefaultSettings() Settings {
	return Settings{
		TurnSeconds: 60,
		MinWords:    words.MinWordsToStart,
		SkipEnabled: true,
	}
}

// Engine is the game coordinator. It owns the phase machine and the five
// domain managers, validates every intent against the current phase, and is
// the only component that calls across managers. All public methods hold one
// mutex, so user intents and timer callbacks are serialized.
type Engine struct {
	mu sync.Mutex

	machine   *state.Machine
	pool      *words.Pool
	scores    *score.Manager
	rounds    *rounds.Manager
	analytics *analytics.Manager
	countdown *timer.Countdown

	settings    Settings
	observer    func(Event)
	now         func() time.Time
	wordShownAt time.Time
}

// NewEngine creates an engine with real time and a fresh random source,
// driven by the shared scheduler.
func NewEngine(settings Settings, scheduler *timer.Scheduler) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return newEngine(settings, scheduler, time.Now, rng, time.Second)
}

func newEngine(settings Settings, scheduler *timer.Scheduler, now func() time.Time, rng *rand.Rand, tickEvery time.Duration) *Engine {
	if settings.TurnSeconds <= 0 {
		settings.TurnSeconds = DefaultSettings().TurnSeconds
	}
	e := &Engine{
		machine:   state.NewMachine(state.PhaseSetup),
		pool:      words.NewPool(settings.MinWords, rng),
		scores:    score.NewManager(),
		rounds:    rounds.NewManager(),
		analytics: analytics.NewManager(now),
		settings:  settings,
		now:       now,
	}
	e.countdown = timer.NewCountdown(scheduler, settings.TurnSeconds, tickEvery)
	e.countdown.SetCallbacks(e.handleTick, e.handleTimerExpired)

	e.machine.AddTransition(state.PhaseSetup, state.PhaseWordInput, nil)
	e.machine.AddTransition(state.PhaseWordInput, state.PhaseSetup, nil)
	e.machine.AddTransition(state.PhaseWordInput, state.PhaseGameOverview, e.pool.CanStartGame)
	e.machine.AddTransition(state.PhaseGameOverview, state.PhasePlaying, nil)
	e.machine.AddTransition(state.PhasePlaying, state.PhaseRoundTransition, nil)
	e.machine.AddTransition(state.PhasePlaying, state.PhaseGameOver, nil)
	e.machine.AddTransition(state.PhaseRoundTransition, state.PhasePlaying, nil)
	e.machine.AddTransition(state.PhaseGameOver, state.PhaseSetup, nil)

	return e
}

// SetObserver registers the single event consumer.
func (e *Engine) SetObserver(observer func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observer = observer
}

func (e *Engine) emit(ev Event) {
	if e.observer != nil {
		e.observer(ev)
	}
}

func (e *Engine) transition(to state.Phase, reason rounds.TransitionReason) bool {
	from := e.machine.Current()
	if err := e.machine.Transition(to); err != nil {
		logger.Log.Debugf("refused transition %s -> %s", from, to)
		return false
	}
	e.rounds.SetReason(reason)
	e.emit(PhaseChanged{From: from, To: to, Reason: reason})
	return true
}

// ProceedToWordInput moves from setup into word collection.
func (e *Engine) ProceedToWordInput() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhaseSetup) {
		return
	}
	e.transition(state.PhaseWordInput, rounds.ReasonNone)
}

// ReturnToSetup is the only backward edge: word input back to setup,
// dropping any collected words.
func (e *Engine) ReturnToSetup() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhaseWordInput) {
		return
	}
	if e.transition(state.PhaseSetup, rounds.ReasonNone) {
		e.pool.Clear()
	}
}

// AddWord submits a word during the input phase. Blank text is rejected;
// outside the input phase the call is a no-op.
func (e *Engine) AddWord(text string) (*words.Word, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhaseWordInput) {
		return nil, nil
	}
	return e.pool.AddWord(text)
}

// CanStartGame reports whether enough words were collected.
func (e *Engine) CanStartGame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pool.CanStartGame()
}

// StartGame seeds a fresh game and shows the overview. Refused without
// mutating phase when the pool is too small or the phase is wrong.
func (e *Engine) StartGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhaseWordInput) {
		return
	}
	if !e.transition(state.PhaseGameOverview, rounds.ReasonNone) {
		return
	}
	e.scores.Reset()
	e.rounds.ResetToFirstRound()
	e.analytics.Reset()
	e.countdown.Reset()
}

// BeginRound starts play from the game overview with a full turn clock.
func (e *Engine) BeginRound() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhaseGameOverview) {
		return
	}
	e.beginTurn()
}

// BeginNextTurn resumes play after a round transition. After a timer expiry
// the clock was reset for the incoming team; after a mid-timer exhaustion
// the same team continues on its remaining time.
func (e *Engine) BeginNextTurn() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhaseRoundTransition) {
		return
	}
	e.beginTurn()
}

func (e *Engine) beginTurn() {
	if !e.transition(state.PhasePlaying, rounds.ReasonNone) {
		return
	}

	round := e.rounds.Round()
	team := e.rounds.Team()

	// Empty at round start, non-empty when resuming mid-round with the
	// other team.
	e.pool.SetupForRound(e.rounds.UsedWordIDs())

	e.analytics.EnsureRound(round)
	e.analytics.OpenInterval(team, round)

	w := e.pool.NextWord()
	if w == nil {
		// Nothing drawable; close out immediately.
		e.wordsExhausted()
		return
	}
	e.wordShownAt = e.now()
	e.emit(WordChanged{Word: *w})

	e.countdown.Start()
	logger.Log.Infow("turn started",
		"round", round.String(),
		"team", int(team),
		"remaining", e.countdown.Remaining(),
	)
}

// WordGuessed records a correct guess for the active team. No-op when no
// word is active or the game is not in play.
func (e *Engine) WordGuessed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhasePlaying) {
		return
	}
	w := e.pool.Current()
	if w == nil {
		return
	}

	round := e.rounds.Round()
	team := e.rounds.Team()

	e.analytics.RecordCorrectGuess(team, round)
	e.recordWordTime(w.ID)

	e.pool.MarkCurrentGuessed()
	e.rounds.MarkWordUsed(w.ID)

	e.scores.IncrementScore(team)
	e.emit(ScoreChanged{Team: team, Score: e.scores.Score(team)})

	if !e.pool.HasUnused() {
		e.wordsExhausted()
		return
	}

	next := e.pool.NextWord()
	e.wordShownAt = e.now()
	e.emit(WordChanged{Word: *next})
}

// SkipCurrentWord requeues the active word and draws a replacement. No-op
// when skipping is disabled or fewer than two words remain unused.
func (e *Engine) SkipCurrentWord() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhasePlaying) || !e.settings.SkipEnabled {
		return
	}
	w := e.pool.Current()
	if w == nil || e.pool.UnusedCount() < 2 {
		return
	}

	e.recordWordTime(w.ID)
	e.analytics.RecordSkip(w.ID)
	e.emit(WordSkipped{Word: *w})

	next := e.pool.SkipCurrent()
	e.wordShownAt = e.now()
	e.emit(WordChanged{Word: *next})
}

func (e *Engine) recordWordTime(wordID string) {
	seconds := e.now().Sub(e.wordShownAt).Seconds()
	e.analytics.RecordWordTime(wordID, seconds)
	e.emit(WordTimeRecorded{WordID: wordID, Seconds: seconds})
}

// wordsExhausted closes out the active turn because the round has no words
// left. In a non-final round the round advances and the same team resumes on
// its remaining clock; in the final round the game ends. Caller holds e.mu.
func (e *Engine) wordsExhausted() {
	e.countdown.Stop()

	round := e.rounds.Round()
	team := e.rounds.Team()

	elapsed := e.analytics.CloseInterval(team, round)
	e.closeTurnScore(team, elapsed)

	if round.IsFinal() {
		if e.transition(state.PhaseGameOver, rounds.ReasonWordsExhausted) {
			winner, tie := e.scores.Winner()
			e.emit(GameEnded{Winner: winner, Tie: tie})
			logger.Log.Infow("game over", "tie", tie, "winner", int(winner))
		}
		return
	}

	e.rounds.AdvanceRound()
	e.transition(state.PhaseRoundTransition, rounds.ReasonWordsExhausted)
}

// handleTimerExpired is the countdown's expiration callback.
func (e *Engine) handleTimerExpired() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhasePlaying) {
		// Stale expiry after the turn already closed.
		return
	}

	// Expiry landing exactly as the last word was guessed must follow the
	// exhaustion path, not record a second turn.
	if e.pool.Current() == nil && !e.pool.HasUnused() {
		e.wordsExhausted()
		return
	}

	round := e.rounds.Round()
	team := e.rounds.Team()

	elapsed := e.analytics.CloseInterval(team, round)
	e.closeTurnScore(team, elapsed)
	e.emit(TimerExpired{Team: team})

	e.rounds.SwitchTeam()
	e.countdown.Reset()
	e.transition(state.PhaseRoundTransition, rounds.ReasonTimerExpired)
}

func (e *Engine) closeTurnScore(team rounds.Team, elapsed float64) {
	total := e.scores.Score(team)
	e.scores.RecordTeamTurnScore(team, total)
	e.scores.ResetTurnGuesses(team)
	e.emit(TurnEnded{Team: team, Score: total, Elapsed: elapsed})
}

func (e *Engine) handleTick(remaining int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.machine.Is(state.PhasePlaying) {
		return
	}
	e.emit(TimerTick{Remaining: remaining})
}

// Reset abandons the current game and returns to setup with empty managers.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.machine.Current()
	e.countdown.Reset()
	e.pool.Clear()
	e.scores.Reset()
	e.rounds.ResetToFirstRound()
	e.analytics.Reset()
	e.machine.Force(state.PhaseSetup)
	e.emit(PhaseChanged{From: from, To: state.PhaseSetup, Reason: rounds.ReasonNone})
}

// --- read accessors ---

// Phase returns the current game phase.
func (e *Engine) Phase() state.Phase {
	return e.machine.Current()
}

// CurrentWord returns a copy of the word under guess, or nil.
func (e *Engine) CurrentWord() *words.Word {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.pool.Current()
	if w == nil {
		return nil
	}
	copied := *w
	return &copied
}

// WordCount reports the master word list size.
func (e *Engine) WordCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pool.Len()
}

// Score returns the team's running total.
func (e *Engine) Score(team rounds.Team) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scores.Score(team)
}

// TurnHistory returns the team's cumulative turn-end snapshots.
func (e *Engine) TurnHistory(team rounds.Team) []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scores.TurnHistory(team)
}

// Winner applies the strict winner rule.
func (e *Engine) Winner() (rounds.Team, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scores.Winner()
}

// CurrentRound returns the active round stage.
func (e *Engine) CurrentRound() rounds.Round {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rounds.Round()
}

// CurrentTeam returns the team whose turn it is.
func (e *Engine) CurrentTeam() rounds.Team {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rounds.Team()
}

// LastTransitionReason reports why play last stopped.
func (e *Engine) LastTransitionReason() rounds.TransitionReason {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rounds.Reason()
}

// TimeRemaining reports the seconds left on the turn clock.
func (e *Engine) TimeRemaining() int {
	return e.countdown.Remaining()
}

// SkipEnabled reports whether the skip rule is on.
func (e *Engine) SkipEnabled() bool {
	return e.settings.SkipEnabled
}

// WordsPerMinuteData returns per-round WPM; zero-time entries are absent,
// never zero.
func (e *Engine) WordsPerMinuteData() map[rounds.Round]analytics.WPM {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analytics.WordsPerMinuteData()
}

// WordStatistics surfaces the hardest words, sorted by average time.
func (e *Engine) WordStatistics() []analytics.WordStat {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analytics.WordStatistics(e.pool.Words())
}

// RoundStats returns the accumulated time and guess stats for a round, or
// nil when the round was never entered.
func (e *Engine) RoundStats(round rounds.Round) *analytics.RoundStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.analytics.RoundStatsFor(round)
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
