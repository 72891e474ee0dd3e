// analytics/analytics.go
package analytics

import (
	"sort"
	"time"

	"github.com/wfunc/wordrush/rounds"
	"github.com/wfunc/wordrush/words"
)

// RoundStats accumulates elapsed play time and correct guesses per team for
// one round. Times only ever grow; a round entered across several timer
// intervals keeps adding to the same counters.
type RoundStats struct {
	Team1Time    float64 `json:"team1_time"`
	Team2Time    float64 `json:"team2_time"`
	Team1Correct int     `json:"team1_correct"`
	Team2Correct int     `json:"team2_correct"`
}

// WPM holds the words-per-minute for one round. A nil entry means no play
// time was recorded for that team in that round; it is never reported as a
// measured zero.
type WPM struct {
	Team1 *float64 `json:"team1,omitempty"`
	Team2 *float64 `json:"team2,omitempty"`
}

// WordStat surfaces how hard a word was: how often it was skipped and the
// average seconds spent on it across the three rounds.
type WordStat struct {
	WordID      string  `json:"word_id"`
	Text        string  `json:"text"`
	Skips       int     `json:"skips"`
	TotalTime   float64 `json:"total_time"`
	AverageTime float64 `json:"average_time"`
}

// Manager owns the per-(team, round) elapsed-time ledger and the per-word
// skip and display-time statistics.
//
// A timing interval opens when a team begins playing a round and closes on
// exactly three occasions: timer expiry, mid-timer word exhaustion, or game
// end. Closing accumulates the elapsed seconds into the round's stats and
// immediately reopens the interval at the close instant; a guard flag keeps
// one logical event from closing the same interval twice.
type Manager struct {
	stats      map[rounds.Round]*RoundStats
	startTimes map[rounds.Team]map[rounds.Round]time.Time

	activeTeam  rounds.Team
	activeRound rounds.Round
	hasActive   bool
	accounted   bool

	wordSkips map[string]int
	wordTime  map[string]float64

	now func() time.Time
}

// NewManager creates a manager reading time from now. Inject a fake clock in
// tests.
func NewManager(now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	m := &Manager{now: now}
	m.Reset()
	return m
}

// Reset discards all recorded stats and open intervals.
func (m *Manager) Reset() {
	m.stats = make(map[rounds.Round]*RoundStats)
	m.startTimes = map[rounds.Team]map[rounds.Round]time.Time{
		rounds.Team1: make(map[rounds.Round]time.Time),
		rounds.Team2: make(map[rounds.Round]time.Time),
	}
	m.hasActive = false
	m.accounted = false
	m.wordSkips = make(map[string]int)
	m.wordTime = make(map[string]float64)
}

// EnsureRound lazily creates the stats entry for a round on first entry.
// Re-entering a round never reinitializes it; accumulated time survives.
func (m *Manager) EnsureRound(round rounds.Round) {
	if _, ok := m.stats[round]; !ok {
		m.stats[round] = &RoundStats{}
	}
}

// OpenInterval starts timing (team, round) from now and arms the close
// guard for the next logical closing event.
func (m *Manager) OpenInterval(team rounds.Team, round rounds.Round) {
	m.EnsureRound(round)
	m.startTimes[team][round] = m.now()
	m.activeTeam = team
	m.activeRound = round
	m.hasActive = true
	m.accounted = false
}

// CloseInterval accounts the open interval for (team, round): elapsed
// seconds are added to the round's team time and the interval restarts at
// now. A second close within the same logical event is a no-op, so an
// exhaustion and an expiry firing for the same instant cannot double-record.
func (m *Manager) CloseInterval(team rounds.Team, round rounds.Round) float64 {
	if m.accounted {
		return 0
	}
	start, ok := m.startTimes[team][round]
	if !ok {
		return 0
	}
	nowT := m.now()
	elapsed := nowT.Sub(start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	m.EnsureRound(round)
	stats := m.stats[round]
	if team == rounds.Team1 {
		stats.Team1Time += elapsed
	} else {
		stats.Team2Time += elapsed
	}

	// Reopen at the close instant; only matters if more time gets
	// attributed before the next true close.
	m.startTimes[team][round] = nowT
	m.accounted = true
	return elapsed
}

// CloseActiveInterval closes whichever interval is currently open.
func (m *Manager) CloseActiveInterval() float64 {
	if !m.hasActive {
		return 0
	}
	return m.CloseInterval(m.activeTeam, m.activeRound)
}

// RecordCorrectGuess bumps the team's correct count for the round.
func (m *Manager) RecordCorrectGuess(team rounds.Team, round rounds.Round) {
	m.EnsureRound(round)
	if team == rounds.Team1 {
		m.stats[round].Team1Correct++
	} else {
		m.stats[round].Team2Correct++
	}
}

// RecordSkip counts one skip against the word.
func (m *Manager) RecordSkip(wordID string) {
	m.wordSkips[wordID]++
}

// RecordWordTime adds seconds of display time to the word's total.
func (m *Manager) RecordWordTime(wordID string, seconds float64) {
	if seconds < 0 {
		return
	}
	m.wordTime[wordID] += seconds
}

// RoundStatsFor returns the recorded stats for a round, or nil if the round
// was never entered.
func (m *Manager) RoundStatsFor(round rounds.Round) *RoundStats {
	return m.stats[round]
}

// WordsPerMinuteData derives WPM per team for every round with recorded
// stats. A team with zero accumulated seconds gets a nil (undefined) entry
// rather than a zero rate.
func (m *Manager) WordsPerMinuteData() map[rounds.Round]WPM {
	out := make(map[rounds.Round]WPM, len(m.stats))
	for round, stats := range m.stats {
		var w WPM
		if stats.Team1Time > 0 {
			v := float64(stats.Team1Correct) / (stats.Team1Time / 60.0)
			w.Team1 = &v
		}
		if stats.Team2Time > 0 {
			v := float64(stats.Team2Correct) / (stats.Team2Time / 60.0)
			w.Team2 = &v
		}
		out[round] = w
	}
	return out
}

// WordStatistics reports, for each word that was skipped or spent time on
// screen, its skip count and average display time (total over the three
// round slots), sorted hardest first.
func (m *Manager) WordStatistics(list []*words.Word) []WordStat {
	var out []WordStat
	for _, w := range list {
		skips := m.wordSkips[w.ID]
		total := m.wordTime[w.ID]
		if skips == 0 && total == 0 {
			continue
		}
		out = append(out, WordStat{
			WordID:      w.ID,
			Text:        w.Text,
			Skips:       skips,
			TotalTime:   total,
			AverageTime: total / float64(rounds.NumRounds),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AverageTime > out[j].AverageTime
	})
	return out
}
