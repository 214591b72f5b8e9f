package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/event"
	"github.com/iamasit07/connect4-agents/backend/internal/service/bot"
	"github.com/iamasit07/connect4-agents/backend/pkg/uid"
)

type GameSession struct {
	GameID       string
	PlayerName   string
	HumanColor   domain.Color
	BotTier      domain.Tier
	BotName      string
	Game         *domain.Game
	Reason       string
	CreatedAt    time.Time
	FinishedAt   time.Time
	LastActivity time.Time
	policy       *bot.Policy
	mu           sync.Mutex
	sm           *SessionManager
}

// Notifier pushes server messages to whoever watches a game.
type Notifier interface {
	SendMessage(gameID string, message domain.ServerMessage) error
}

type MatchRecorder interface {
	SaveMatch(ctx context.Context, m *domain.MatchRecord) error
}

type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error
	GetSnapshot(ctx context.Context, gameID string) (*domain.Snapshot, error)
	DeleteSnapshot(ctx context.Context, gameID string) error
}

// SessionManager manages active human vs bot sessions
type SessionManager struct {
	Session   map[string]*GameSession // gameID → GameSession
	mu        sync.RWMutex
	repo      MatchRecorder
	cache     SnapshotStore
	publisher event.Publisher
	botDelay  time.Duration
	pending   sync.WaitGroup
}

// NewSessionManager accepts nil repo and cache. A zero botDelay makes the bot
// reply inside the call that made the human move.
func NewSessionManager(repo MatchRecorder, cache SnapshotStore, publisher event.Publisher, botDelay time.Duration) *SessionManager {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &SessionManager{
		Session:   make(map[string]*GameSession),
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		botDelay:  botDelay,
	}
}

func (sm *SessionManager) CreateSession(playerName string, humanColor domain.Color, tier domain.Tier, columns, rows int, conn Notifier) (*GameSession, error) {
	if humanColor != domain.Red && humanColor != domain.Yellow {
		return nil, domain.ErrUnknownColor
	}
	if playerName == "" {
		playerName = "Player"
	}

	newGame, err := domain.NewGame(columns, rows)
	if err != nil {
		return nil, err
	}
	policy, err := bot.NewTierPolicy(tier, humanColor.Opponent(), bot.NewRand(0))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		PlayerName:   playerName,
		HumanColor:   humanColor,
		BotTier:      tier,
		BotName:      domain.GetBotName(tier),
		Game:         newGame,
		CreatedAt:    now,
		LastActivity: now,
		policy:       policy,
		sm:           sm,
	}

	sm.mu.Lock()
	sm.Session[gs.GameID] = gs
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s (%s) vs %s",
		gs.GameID, playerName, humanColor, gs.BotName)

	gs.mu.Lock()
	defer gs.mu.Unlock()

	snap := gs.snapshotLocked()
	conn.SendMessage(gs.GameID, domain.ServerMessage{Type: "game_state", GameID: gs.GameID, State: snap})
	sm.cacheSnapshot(snap)
	sm.publish(domain.MatchEvent{Type: domain.EventGameStarted, Move: &domain.MoveEvent{GameID: gs.GameID}})

	// the bot holds Red and opens
	if gs.Game.Turn == gs.policy.Color() {
		gs.scheduleBotMoveLocked(conn)
	}
	return gs, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

// ListSessions returns the snapshots of every session still in memory.
func (sm *SessionManager) ListSessions() []*domain.Snapshot {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, s := range sm.Session {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	out := make([]*domain.Snapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	return out
}

func (sm *SessionManager) RemoveSession(gameID string) bool {
	sm.mu.Lock()
	if _, exists := sm.Session[gameID]; !exists {
		sm.mu.Unlock()
		return false
	}
	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	sm.mu.Unlock()

	sm.dropSnapshots(gameID)
	return true
}

// CleanupOldSessions drops finished sessions older than finishedTTL and
// active ones idle for longer than idleTTL.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, idleTTL time.Duration) int {
	sm.mu.Lock()
	var removed []string
	now := time.Now()

	for gameID, session := range sm.Session {
		session.mu.Lock()
		stale := false
		if session.Game.IsFinished() {
			stale = now.Sub(session.FinishedAt) > finishedTTL
		} else {
			stale = now.Sub(session.LastActivity) > idleTTL
		}
		session.mu.Unlock()

		if stale {
			delete(sm.Session, gameID)
			removed = append(removed, gameID)
		}
	}
	sm.mu.Unlock()

	count := len(removed)
	sm.dropSnapshots(removed...)

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

// Wait blocks until pending bot moves and background saves are done.
func (sm *SessionManager) Wait() {
	sm.pending.Wait()
}

func (sm *SessionManager) cacheSnapshot(snap *domain.Snapshot) {
	if sm.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sm.cache.SaveSnapshot(ctx, snap); err != nil {
		log.Printf("[REDIS] Failed to cache snapshot for %s: %v", snap.GameID, err)
	}
}

// dropSnapshots removes cached snapshots of sessions no longer in memory;
// finished games are still served from storage.
func (sm *SessionManager) dropSnapshots(gameIDs ...string) {
	if sm.cache == nil || len(gameIDs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, id := range gameIDs {
		if err := sm.cache.DeleteSnapshot(ctx, id); err != nil {
			log.Printf("[REDIS] Failed to drop snapshot for %s: %v", id, err)
		}
	}
}

func (sm *SessionManager) publish(ev domain.MatchEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sm.publisher.Publish(ctx, ev); err != nil {
		log.Printf("[KAFKA] Failed to publish %s: %v", ev.Type, err)
	}
}

// Saves the match in background to avoid blocking game_over messages
func (sm *SessionManager) saveMatchAsync(record *domain.MatchRecord) {
	sm.pending.Add(1)
	go func() {
		defer sm.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if sm.repo != nil {
			if err := sm.repo.SaveMatch(ctx, record); err != nil {
				log.Printf("[GAME] Error saving game %s: %v", record.ID, err)
			} else {
				log.Printf("[GAME] Game %s saved successfully", record.ID)
			}
		}
		sm.publish(domain.MatchEvent{Type: domain.EventMatchFinished, Match: record, At: record.FinishedAt})
	}()
}

func (gs *GameSession) HandleMove(color domain.Color, column int, conn Notifier) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if color != gs.HumanColor {
		return domain.ErrNotYourTurn
	}

	row, err := gs.Game.MakeMove(color, column)
	if err != nil {
		return err
	}

	gs.afterMoveLocked(color, column, row, "", conn)
	if !gs.Game.IsFinished() {
		gs.scheduleBotMoveLocked(conn)
	}
	return nil
}

// HandleBotMove plays the bot's reply if it is still the bot's turn.
func (gs *GameSession) HandleBotMove(conn Notifier) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.playBotMoveLocked(conn)
}

func (gs *GameSession) playBotMoveLocked(conn Notifier) error {
	botColor := gs.policy.Color()
	if gs.Game.IsFinished() || gs.Game.Turn != botColor {
		return nil
	}

	d, err := gs.policy.Choose(gs.Game.Board)
	if err != nil {
		return err
	}
	row, err := gs.Game.MakeMove(botColor, d.Column)
	if err != nil {
		return err
	}

	log.Printf("[BOT] %s played column %d (%s) in game %s", gs.BotName, d.Column, d.Rule, gs.GameID)
	gs.afterMoveLocked(botColor, d.Column, row, d.Rule, conn)
	return nil
}

func (gs *GameSession) scheduleBotMoveLocked(conn Notifier) {
	if gs.sm.botDelay <= 0 {
		if err := gs.playBotMoveLocked(conn); err != nil {
			log.Printf("[BOT] Error handling bot move: %v", err)
		}
		return
	}

	gs.sm.pending.Add(1)
	go func() {
		defer gs.sm.pending.Done()
		// Small delay to feel natural
		time.Sleep(gs.sm.botDelay)
		if err := gs.HandleBotMove(conn); err != nil {
			log.Printf("[BOT] Error handling bot move: %v", err)
		}
	}()
}

func (gs *GameSession) afterMoveLocked(color domain.Color, column, row int, rule string, conn Notifier) {
	gs.LastActivity = time.Now()

	msg := domain.ServerMessage{
		Type:   "move_made",
		GameID: gs.GameID,
		Column: column,
		Row:    row,
		Player: color.String(),
		Rule:   rule,
	}
	if !gs.Game.IsFinished() {
		msg.NextTurn = gs.Game.Turn.String()
	}
	conn.SendMessage(gs.GameID, msg)

	gs.sm.publish(domain.MatchEvent{
		Type: domain.EventMoveMade,
		Move: &domain.MoveEvent{GameID: gs.GameID, Column: column, Row: row, Color: color, Rule: rule},
	})

	if gs.Game.Status == domain.StatusWon {
		gs.finishLocked(domain.ReasonConnectFour, conn)
		return
	}
	if gs.Game.Status == domain.StatusDraw {
		gs.finishLocked(domain.ReasonDraw, conn)
		return
	}
	gs.sm.cacheSnapshot(gs.snapshotLocked())
}

// Resign ends the game in favour of the bot.
func (gs *GameSession) Resign(color domain.Color, conn Notifier) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if color != gs.HumanColor {
		return domain.ErrInvalidMove
	}
	if err := gs.Game.Resign(color); err != nil {
		return err
	}

	log.Printf("[SESSION] %s resigned game %s", gs.PlayerName, gs.GameID)
	gs.finishLocked(domain.ReasonResign, conn)
	return nil
}

func (gs *GameSession) finishLocked(reason string, conn Notifier) {
	gs.FinishedAt = time.Now()
	gs.Reason = reason

	snap := gs.snapshotLocked()
	conn.SendMessage(gs.GameID, domain.ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		Winner: snap.Winner,
		Reason: reason,
		State:  snap,
	})

	gs.sm.cacheSnapshot(snap)
	gs.sm.saveMatchAsync(gs.recordLocked())
}

func (gs *GameSession) Snapshot() *domain.Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) IsFinished() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.IsFinished()
}

func (gs *GameSession) names() (red, yellow string) {
	if gs.HumanColor == domain.Red {
		return gs.PlayerName, gs.BotName
	}
	return gs.BotName, gs.PlayerName
}

func (gs *GameSession) snapshotLocked() *domain.Snapshot {
	red, yellow := gs.names()
	snap := &domain.Snapshot{
		GameID:     gs.GameID,
		RedName:    red,
		YellowName: yellow,
		BotTier:    gs.BotTier,
		Columns:    gs.Game.Board.ColumnCount(),
		Rows:       gs.Game.Board.RowCount(),
		Board:      gs.Game.Board.Cells(),
		Status:     gs.Game.Status,
		Reason:     gs.Reason,
		MoveCount:  gs.Game.MoveCount,
		Moves:      append([]domain.Move{}, gs.Game.Moves...),
	}
	if !gs.Game.IsFinished() {
		snap.Turn = gs.Game.Turn.String()
	}
	if gs.Game.Winner != domain.None {
		snap.Winner = gs.Game.Winner.String()
	}
	return snap
}

func (gs *GameSession) recordLocked() *domain.MatchRecord {
	red, yellow := gs.names()
	record := &domain.MatchRecord{
		ID:         gs.GameID,
		Source:     domain.SourceHuman,
		RedName:    red,
		YellowName: yellow,
		Winner:     gs.Game.Winner,
		Reason:     gs.Reason,
		TotalMoves: gs.Game.MoveCount,
		Moves:      gs.Game.MoveColumns(),
		Board:      gs.Game.Board.Cells(),
		Columns:    gs.Game.Board.ColumnCount(),
		Rows:       gs.Game.Board.RowCount(),
		CreatedAt:  gs.CreatedAt,
		FinishedAt: gs.FinishedAt,
	}
	if gs.HumanColor == domain.Red {
		record.YellowTier = gs.BotTier
	} else {
		record.RedTier = gs.BotTier
	}
	return record
}
