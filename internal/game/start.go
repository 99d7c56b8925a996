package game

import "context"

// StartGame moves a lobby room to playing. Only the host may start and
// at least minPlayers seats must be filled. The seed-rate fetch runs
// outside the room lock so a slow provider never blocks other rooms;
// the room becomes playing only after a rate table (real or fallback)
// is committed.
func (e *Engine) StartGame(ctx context.Context, id PlayerID) error {
	room := e.roomByConn(id)
	if room == nil {
		return nil
	}

	room.mu.Lock()
	if room.Status != StatusLobby {
		room.mu.Unlock()
		return ErrAlreadyStarted
	}
	if room.HostID != id {
		room.mu.Unlock()
		return ErrNotHost
	}
	if len(room.Players) < e.minPlayers {
		room.mu.Unlock()
		return ErrNotEnoughPlayers
	}
	room.mu.Unlock()

	realRates := e.seedRates(ctx)

	room.mu.Lock()
	// A concurrent start may have won the race while we were fetching.
	if room.Status != StatusLobby {
		room.mu.Unlock()
		return ErrAlreadyStarted
	}
	room.Status = StatusPlaying
	room.Game = &GameState{
		Round:           1,
		Rates:           copyRates(realRates),
		RealRates:       realRates,
		LastRateChanges: map[Currency]float64{},
		RateChangeLog:   []RateChange{},
	}
	e.drawEventCard(room)
	room.trackPortfolioHistory()
	players := len(room.Players)
	e.broadcast(room, MsgGameStarted, nil)
	room.mu.Unlock()

	e.logger.Info("game started", "room", room.Code, "players", players)
	e.broadcastGameState(room)
	return nil
}

// seedRates asks the external provider for a live table and degrades to
// the fixed fallback on any failure.
func (e *Engine) seedRates(ctx context.Context) map[Currency]float64 {
	if e.rates == nil {
		return copyRates(FallbackRates)
	}
	rates, err := e.rates.SeedRates(ctx)
	if err != nil {
		e.logger.Warn("seed rate fetch failed, using fallback table", "error", err)
		return copyRates(FallbackRates)
	}
	return rates
}
