package rpc

import (
	"errors"
	"net"
	"net/rpc"

	"github.com/wfunc/wordrush/logger"
	"github.com/wfunc/wordrush/models"
	"github.com/wfunc/wordrush/rounds"
	"github.com/wfunc/wordrush/session"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// GameStatsService exposes read-only analytics snapshots of live games for
// an external dashboard.
type GameStatsService struct {
	sessions *session.Manager
}

func NewGameStatsService(sessions *session.Manager) *GameStatsService {
	return &GameStatsService{sessions: sessions}
}

type GameStatsArgs struct {
	SessionID string
}

type GameStatsReply struct {
	Snapshot models.AnalyticsSnapshot
	Phase    string
}

// GetGameStats returns the analytics snapshot of one session's game.
func (gs *GameStatsService) GetGameStats(args *GameStatsArgs, reply *GameStatsReply) error {
	sess, exists := gs.sessions.Get(args.SessionID)
	if !exists {
		return errors.New("session not found")
	}

	engine := sess.Game
	reply.Phase = engine.Phase().String()

	wpm := engine.WordsPerMinuteData()
	for _, r := range []rounds.Round{rounds.RoundDescribe, rounds.RoundActOut, rounds.RoundOneWord} {
		w, ok := wpm[r]
		if !ok {
			continue
		}
		entry := models.RoundAnalytics{
			Round:    r.String(),
			Team1WPM: w.Team1,
			Team2WPM: w.Team2,
		}
		if stats := engine.RoundStats(r); stats != nil {
			entry.Team1Time = stats.Team1Time
			entry.Team2Time = stats.Team2Time
		}
		reply.Snapshot.Rounds = append(reply.Snapshot.Rounds, entry)
	}

	for _, ws := range engine.WordStatistics() {
		reply.Snapshot.WordStats = append(reply.Snapshot.WordStats, models.WordStatEntry{
			Text:        ws.Text,
			Skips:       ws.Skips,
			AverageTime: ws.AverageTime,
		})
	}

	reply.Snapshot.Team1History = engine.TurnHistory(rounds.Team1)
	reply.Snapshot.Team2History = engine.TurnHistory(rounds.Team2)
	return nil
}

type ListSessionsArgs struct{}

type ListSessionsReply struct {
	SessionIDs []string
}

// ListSessions returns the ids of every live game session.
func (gs *GameStatsService) ListSessions(args *ListSessionsArgs, reply *ListSessionsReply) error {
	for _, sess := range gs.sessions.All() {
		reply.SessionIDs = append(reply.SessionIDs, sess.GetID())
	}
	return nil
}
