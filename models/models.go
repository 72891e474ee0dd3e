// models/models.go
package models

// PhaseChange announces a phase transition to the UI.
type PhaseChange struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// TimerTick carries the seconds left on the turn clock.
type TimerTick struct {
	Remaining int `json:"remaining"`
}

// TurnEnd carries the cumulative score snapshot recorded at turn end.
type TurnEnd struct {
	Team  int `json:"team"`
	Score int `json:"score"`
}

// GameEnd announces the final result. Winner is meaningless when Tie.
type GameEnd struct {
	Winner int  `json:"winner"`
	Tie    bool `json:"tie"`
}

// StateSnapshot is the full observable game state, pushed on demand.
type StateSnapshot struct {
	Phase       string `json:"phase"`
	Round       string `json:"round"`
	Team        int    `json:"team"`
	Reason      string `json:"reason"`
	Team1Score  int    `json:"team1_score"`
	Team2Score  int    `json:"team2_score"`
	WordCount   int    `json:"word_count"`
	CurrentWord string `json:"current_word,omitempty"`
	Remaining   int    `json:"remaining"`
	CanStart    bool   `json:"can_start"`
	SkipEnabled bool   `json:"skip_enabled"`
}

// RoundAnalytics is one round's WPM entry in the analytics snapshot.
type RoundAnalytics struct {
	Round     string   `json:"round"`
	Team1WPM  *float64 `json:"team1_wpm,omitempty"`
	Team2WPM  *float64 `json:"team2_wpm,omitempty"`
	Team1Time float64  `json:"team1_time"`
	Team2Time float64  `json:"team2_time"`
}

// AnalyticsSnapshot bundles the derived statistics for the UI and the RPC
// dashboard surface.
type AnalyticsSnapshot struct {
	Rounds       []RoundAnalytics `json:"rounds"`
	WordStats    []WordStatEntry  `json:"word_stats"`
	Team1History []int            `json:"team1_history"`
	Team2History []int            `json:"team2_history"`
}

// WordStatEntry mirrors analytics.WordStat on the wire.
type WordStatEntry struct {
	Text        string  `json:"text"`
	Skips       int     `json:"skips"`
	AverageTime float64 `json:"average_time"`
}

// AddWordRequest is the payload of an add-word intent.
type AddWordRequest struct {
	Text string `json:"text"`
}

// CatalogRequest names a stored word catalog.
type CatalogRequest struct {
	Name string `json:"name"`
}

// ErrorReply reports a refused request.
type ErrorReply struct {
	Error string `json:"error"`
}
