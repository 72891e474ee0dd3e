// notify/notify.go
package notify

import (
	"errors"

	"github.com/wfunc/wordrush/game"
	"github.com/wfunc/wordrush/models"
	"github.com/wfunc/wordrush/network"
	"github.com/wfunc/wordrush/session"
)

var ErrSessionNotFound = errors.New("session not found")

// Notifier fans engine events and state snapshots out to UI clients. Each
// session owns exactly one game, so pushes are session-scoped.
type Notifier interface {
	PushToSession(sessionID string, msgID uint16, v interface{}) error
	PushEvent(sessionID string, ev game.Event)
	PushToAll(msgID uint16, v interface{})
}

type SessionNotifier struct {
	sessions *session.Manager
}

func NewSessionNotifier(sessions *session.Manager) *SessionNotifier {
	return &SessionNotifier{sessions: sessions}
}

func (n *SessionNotifier) PushToSession(sessionID string, msgID uint16, v interface{}) error {
	sess, exists := n.sessions.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return sess.SendJSON(msgID, v)
}

// PushEvent translates an engine event into its wire message. Events with no
// UI meaning are dropped here.
func (n *SessionNotifier) PushEvent(sessionID string, ev game.Event) {
	switch e := ev.(type) {
	case game.PhaseChanged:
		n.PushToSession(sessionID, network.MsgTypeStateSync, models.PhaseChange{
			From:   e.From.String(),
			To:     e.To.String(),
			Reason: e.Reason.String(),
		})
	case game.TimerTick:
		n.PushToSession(sessionID, network.MsgTypeTimerTick, models.TimerTick{
			Remaining: e.Remaining,
		})
	case game.WordChanged:
		n.PushToSession(sessionID, network.MsgTypeWordChanged, e.Word)
	case game.TurnEnded:
		n.PushToSession(sessionID, network.MsgTypeTurnEnded, models.TurnEnd{
			Team:  int(e.Team),
			Score: e.Score,
		})
	case game.GameEnded:
		n.PushToSession(sessionID, network.MsgTypeGameEnded, models.GameEnd{
			Winner: int(e.Winner),
			Tie:    e.Tie,
		})
	}
}

func (n *SessionNotifier) PushToAll(msgID uint16, v interface{}) {
	for _, sess := range n.sessions.All() {
		if err := sess.SendJSON(msgID, v); err != nil {
			// Dead connections get reaped by their read loop.
			continue
		}
	}
}
