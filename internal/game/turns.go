package game

// EndTurn ends the current player's turn and advances the room.
func (e *Engine) EndTurn(id PlayerID) error {
	room := e.roomByConn(id)
	if room == nil {
		return nil
	}

	room.mu.Lock()
	if room.Status != StatusPlaying {
		room.mu.Unlock()
		return nil
	}
	if room.currentPlayer().ID != id {
		room.mu.Unlock()
		return ErrNotYourTurn
	}
	ended := e.advance(room)
	room.mu.Unlock()
	if !ended {
		e.broadcastGameState(room)
	}
	return nil
}

// advance is the single turn-advance state machine. With one or zero
// players left in the race the room ends immediately. Otherwise the
// next active seat is found cyclically; landing on or before the
// current index means the traversal wrapped, which completes the round:
// commit pending rates, snapshot portfolios, draw the next event and
// reset per-turn flags. Caller holds the room lock.
func (e *Engine) advance(r *Room) (ended bool) {
	gs := r.Game
	if r.activeCount() <= 1 {
		e.endGame(r)
		return true
	}

	next := r.nextActiveIndex(gs.CurrentPlayerIndex)
	if next <= gs.CurrentPlayerIndex {
		gs.Round++
		e.applyRateChanges(r)
		r.trackPortfolioHistory()
		e.drawEventCard(r)
	}
	gs.CurrentPlayerIndex = next
	return false
}
