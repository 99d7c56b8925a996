package game

import "sort"

// checkWin freezes a player's finish order the moment their goal
// currency holding reaches the goal amount. Only market transactions
// trigger the check; trades do not. Caller holds the room lock.
func (e *Engine) checkWin(r *Room, p *Player) {
	if p.Finished || p.Holdings[p.GoalCard.Currency] < p.GoalCard.Amount {
		return
	}
	p.Finished = true
	p.FinishRound = r.Game.Round

	rank := 0
	for _, pl := range r.Players {
		if pl.Finished {
			rank++
		}
	}
	e.logger.Info("player finished", "room", r.Code, "player", p.Name, "round", p.FinishRound, "rank", rank)
	e.broadcast(r, MsgPlayerFinished, PlayerFinishedPayload{PlayerName: p.Name, Rank: rank})
}

// endGame moves the room to its terminal state and publishes the final
// ranking at the last committed rates. Caller holds the room lock.
func (e *Engine) endGame(r *Room) {
	r.Status = StatusFinished
	ranking := FinalRanking(r.Players, r.Game.Rates)
	views := make([]PlayerView, len(ranking))
	for i, p := range ranking {
		views[i] = viewOf(p)
	}

	e.logger.Info("game over", "room", r.Code, "rounds", r.Game.Round)
	e.broadcast(r, MsgGameOver, GameOverPayload{Ranking: views, Rates: copyRates(r.Game.Rates)})
}

// FinalRanking orders players for game end: finishers first, ascending
// by finish round; everyone else descending by portfolio value at the
// given rates. Ties keep insertion order.
func FinalRanking(players []*Player, rates map[Currency]float64) []*Player {
	ranked := make([]*Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.FinishRound > 0 && b.FinishRound > 0:
			return a.FinishRound < b.FinishRound
		case a.FinishRound > 0:
			return true
		case b.FinishRound > 0:
			return false
		default:
			return PortfolioValue(a.Holdings, rates) > PortfolioValue(b.Holdings, rates)
		}
	})
	return ranked
}
