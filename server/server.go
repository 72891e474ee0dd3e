package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/wordrush/game"
	"github.com/wfunc/wordrush/logger"
	"github.com/wfunc/wordrush/models"
	"github.com/wfunc/wordrush/monitor"
	"github.com/wfunc/wordrush/network"
	"github.com/wfunc/wordrush/notify"
	"github.com/wfunc/wordrush/persistence"
	"github.com/wfunc/wordrush/rounds"
	wordrush_rpc "github.com/wfunc/wordrush/rpc"
	"github.com/wfunc/wordrush/services"
	"github.com/wfunc/wordrush/session"
	"github.com/wfunc/wordrush/timer"
)

// GameServer is the websocket boundary of the game engine. Each connected
// client gets its own session and its own engine; the server translates
// packets into engine intents and engine events back into pushes.
type GameServer struct {
	addr           string
	metricsAddr    string
	upgrader       websocket.Upgrader
	sessionManager *session.Manager
	notifier       notify.Notifier
	catalogService *services.CatalogService
	monitor        *monitor.Monitor
	scheduler      *timer.Scheduler
	settings       game.Settings
	rpcServer      *wordrush_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(addr, rpcAddr, metricsAddr string, settings game.Settings, store persistence.WordStore) *GameServer {
	s := &GameServer{
		addr:           addr,
		metricsAddr:    metricsAddr,
		sessionManager: session.NewManager(),
		catalogService: services.NewCatalogService(store),
		monitor:        monitor.NewMonitor("wordrush"),
		scheduler:      timer.NewScheduler(100 * time.Millisecond),
		settings:       settings,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local UI only
			},
		},
	}

	s.notifier = notify.NewSessionNotifier(s.sessionManager)

	rpcServer, err := wordrush_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	statsService := wordrush_rpc.NewGameStatsService(s.sessionManager)
	rpc.Register(statsService)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.monitor.StartServer(s.metricsAddr)

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.scheduler.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	engine := game.NewEngine(s.settings, s.scheduler)
	sess := session.NewSession(uuid.New().String(), wsConn, engine)
	s.sessionManager.Add(sess)
	s.monitor.IncActiveGames()

	sessionID := sess.GetID()
	engine.SetObserver(func(ev game.Event) {
		switch e := ev.(type) {
		case game.ScoreChanged:
			s.monitor.IncWordsGuessed()
		case game.WordSkipped:
			s.monitor.IncWordsSkipped()
		case game.TurnEnded:
			s.monitor.ObserveTurnDuration(e.Elapsed)
		case game.GameEnded:
			s.monitor.IncGamesCompleted()
		}
		s.notifier.PushEvent(sessionID, ev)
	})

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sessionID)

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sessionID)
		engine.Reset()
		s.sessionManager.Remove(sessionID)
		s.monitor.DecActiveGames()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	s.monitor.IncMessagesReceived()
	engine := sess.Game

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
	case network.MsgTypeProceedWordInput:
		engine.ProceedToWordInput()
		s.pushState(sess)
	case network.MsgTypeReturnToSetup:
		engine.ReturnToSetup()
		s.pushState(sess)
	case network.MsgTypeAddWord:
		s.handleAddWord(sess, packet)
	case network.MsgTypeStartGame:
		engine.StartGame()
		s.pushState(sess)
	case network.MsgTypeBeginRound:
		engine.BeginRound()
		s.pushState(sess)
	case network.MsgTypeBeginNextTurn:
		engine.BeginNextTurn()
		s.pushState(sess)
	case network.MsgTypeWordGuessed:
		engine.WordGuessed()
		s.pushState(sess)
	case network.MsgTypeSkipWord:
		engine.SkipCurrentWord()
		s.pushState(sess)
	case network.MsgTypeResetGame:
		engine.Reset()
		s.pushState(sess)
	case network.MsgTypeSaveCatalog:
		s.handleSaveCatalog(sess, packet)
	case network.MsgTypeLoadCatalog:
		s.handleLoadCatalog(sess, packet)
	case network.MsgTypeAnalytics:
		s.pushAnalytics(sess)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

func (s *GameServer) handleAddWord(sess *session.Session, packet *network.Packet) {
	var req models.AddWordRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	if _, err := sess.Game.AddWord(req.Text); err != nil {
		sess.SendJSON(network.MsgTypeError, models.ErrorReply{Error: err.Error()})
		return
	}
	s.pushState(sess)
}

func (s *GameServer) handleSaveCatalog(sess *session.Session, packet *network.Packet) {
	var req struct {
		Name  string   `json:"name"`
		Words []string `json:"words"`
	}
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	if err := s.catalogService.SaveCatalog(req.Name, req.Words); err != nil {
		sess.SendJSON(network.MsgTypeError, models.ErrorReply{Error: err.Error()})
		return
	}
	logger.Log.Infof("Session %s saved catalog %q", sess.GetID(), req.Name)
}

func (s *GameServer) handleLoadCatalog(sess *session.Session, packet *network.Packet) {
	var req models.CatalogRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}
	added, err := s.catalogService.LoadIntoGame(sess.Game, req.Name)
	if err != nil {
		sess.SendJSON(network.MsgTypeError, models.ErrorReply{Error: err.Error()})
		return
	}
	logger.Log.Infof("Session %s loaded %d words from catalog %q", sess.GetID(), added, req.Name)
	s.pushState(sess)
}

func (s *GameServer) pushState(sess *session.Session) {
	engine := sess.Game

	snapshot := models.StateSnapshot{
		Phase:       engine.Phase().String(),
		Round:       engine.CurrentRound().String(),
		Team:        int(engine.CurrentTeam()),
		Reason:      engine.LastTransitionReason().String(),
		Team1Score:  engine.Score(rounds.Team1),
		Team2Score:  engine.Score(rounds.Team2),
		WordCount:   engine.WordCount(),
		Remaining:   engine.TimeRemaining(),
		CanStart:    engine.CanStartGame(),
		SkipEnabled: engine.SkipEnabled(),
	}
	if w := engine.CurrentWord(); w != nil {
		snapshot.CurrentWord = w.Text
	}

	sess.SendJSON(network.MsgTypeStateSync, snapshot)
}

func (s *GameServer) pushAnalytics(sess *session.Session) {
	engine := sess.Game

	var snapshot models.AnalyticsSnapshot
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
		snapshot.Rounds = append(snapshot.Rounds, entry)
	}
	for _, ws := range engine.WordStatistics() {
		snapshot.WordStats = append(snapshot.WordStats, models.WordStatEntry{
			Text:        ws.Text,
			Skips:       ws.Skips,
			AverageTime: ws.AverageTime,
		})
	}
	snapshot.Team1History = engine.TurnHistory(rounds.Team1)
	snapshot.Team2History = engine.TurnHistory(rounds.Team2)

	sess.SendJSON(network.MsgTypeAnalytics, snapshot)
}
