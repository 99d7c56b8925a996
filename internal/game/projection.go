package game

// PlayerView is the public projection of a player. It enumerates
// exactly what leaves the engine; unexported room internals and pending
// rate deltas never appear here.
type PlayerView struct {
	ID               PlayerID             `json:"id"`
	Name             string               `json:"name"`
	Ready            bool                 `json:"ready"`
	IsHost           bool                 `json:"isHost"`
	StartingCard     Card                 `json:"startingCard"`
	GoalCard         Card                 `json:"goalCard"`
	Holdings         map[Currency]float64 `json:"holdings"`
	Finished         bool                 `json:"finished"`
	FinishRound      int                  `json:"finishRound,omitempty"`
	MadeTransaction  bool                 `json:"madeTransaction"`
	MadeTrade        bool                 `json:"madeTrade"`
	Disconnected     bool                 `json:"disconnected"`
	PortfolioHistory []PortfolioPoint     `json:"portfolioHistory"`
}

// GameStateView is the per-player room snapshot pushed after every
// mutation. Pending rate changes are deliberately absent: players act
// without knowing the next rate shock.
type GameStateView struct {
	Round             int                  `json:"round"`
	Rates             map[Currency]float64 `json:"rates"`
	RealRates         map[Currency]float64 `json:"realRates"`
	LastRateChanges   map[Currency]float64 `json:"lastRateChanges"`
	CurrentEvent      *Event               `json:"currentEvent"`
	CurrentPlayerID   PlayerID             `json:"currentPlayerId"`
	CurrentPlayerName string               `json:"currentPlayerName"`
	IsMyTurn          bool                 `json:"isMyTurn"`
	Players           []PlayerView         `json:"players"`
	MyPlayer          PlayerView           `json:"myPlayer"`
}

// viewOf copies the player's public fields. Maps and slices are cloned
// so the transport can serialize after the room lock is released.
func viewOf(p *Player) PlayerView {
	history := make([]PortfolioPoint, len(p.PortfolioHistory))
	copy(history, p.PortfolioHistory)
	return PlayerView{
		ID:               p.ID,
		Name:             p.Name,
		Ready:            p.Ready,
		IsHost:           p.IsHost,
		StartingCard:     p.StartingCard,
		GoalCard:         p.GoalCard,
		Holdings:         copyRates(p.Holdings),
		Finished:         p.Finished,
		FinishRound:      p.FinishRound,
		MadeTransaction:  p.MadeTransaction,
		MadeTrade:        p.MadeTrade,
		Disconnected:     p.Disconnected,
		PortfolioHistory: history,
	}
}

// rosterViews projects the full player list. Caller holds the room lock.
func rosterViews(r *Room) []PlayerView {
	out := make([]PlayerView, len(r.Players))
	for i, p := range r.Players {
		out[i] = viewOf(p)
	}
	return out
}

// buildGameState assembles the view one player receives. Caller holds
// the room lock.
func buildGameState(r *Room, viewer *Player) GameStateView {
	gs := r.Game
	current := r.currentPlayer()
	view := GameStateView{
		Round:           gs.Round,
		Rates:           copyRates(gs.Rates),
		RealRates:       copyRates(gs.RealRates),
		LastRateChanges: copyRates(gs.LastRateChanges),
		CurrentEvent:    gs.CurrentEvent,
		Players:         rosterViews(r),
		MyPlayer:        viewOf(viewer),
	}
	if current != nil {
		view.CurrentPlayerID = current.ID
		view.CurrentPlayerName = current.Name
		view.IsMyTurn = viewer.ID == current.ID
	}
	return view
}

// broadcastGameState pushes a personalized snapshot to every member.
func (e *Engine) broadcastGameState(r *Room) {
	r.mu.Lock()
	if r.Game == nil {
		r.mu.Unlock()
		return
	}
	views := make(map[PlayerID]GameStateView, len(r.Players))
	for _, p := range r.Players {
		views[p.ID] = buildGameState(r, p)
	}
	r.mu.Unlock()

	for id, view := range views {
		e.notifier.Notify(id, MsgGameState, view)
	}
}
