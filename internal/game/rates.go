package game

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// drawEventCard selects the next event, samples a pending percentage
// delta in [-riskFactor, +riskFactor] for each affected currency, and
// resets every player's per-turn flags. The deltas stay hidden from all
// projections until committed at the round boundary. Caller holds the
// room lock.
func (e *Engine) drawEventCard(r *Room) {
	gs := r.Game
	event := EventCatalog[e.rng.Intn(len(EventCatalog))]
	gs.CurrentEvent = &event
	gs.pendingRateChanges = make(map[Currency]float64, len(event.AffectedCurrencies))

	for _, c := range event.AffectedCurrencies {
		if c == DomesticCurrency {
			continue
		}
		gs.pendingRateChanges[c] = (e.rng.Float64()*2 - 1) * event.RiskFactor
	}

	for _, p := range r.Players {
		p.MadeTransaction = false
		p.MadeTrade = false
	}
}

// applyRateChanges commits the pending deltas: newRate = round(old *
// (1 + change/100), 2dp), logged per currency. The domestic currency is
// never touched. Players get a dedicated ratesApplied notification so
// clients can show what just changed, distinct from the regular state
// broadcast. Caller holds the room lock.
func (e *Engine) applyRateChanges(r *Room) {
	gs := r.Game
	if gs.pendingRateChanges == nil {
		return
	}

	gs.LastRateChanges = map[Currency]float64{}
	gs.RateChangeLog = []RateChange{}

	for _, c := range Currencies {
		change, ok := gs.pendingRateChanges[c]
		if !ok || c == DomesticCurrency {
			continue
		}
		old := gs.Rates[c]
		gs.Rates[c] = round2(old * (1 + change/100))
		gs.LastRateChanges[c] = change
		gs.RateChangeLog = append(gs.RateChangeLog, RateChange{Currency: c, Old: old, New: gs.Rates[c], Change: change})
		e.logger.Info("rate committed", "room", r.Code, "currency", c, "old", old, "new", gs.Rates[c], "change", change)
	}

	gs.pendingRateChanges = nil

	e.broadcast(r, MsgRatesApplied, RatesAppliedPayload{
		Event:           gs.CurrentEvent,
		RateChangeLog:   gs.RateChangeLog,
		Rates:           copyRates(gs.Rates),
		LastRateChanges: gs.LastRateChanges,
	})
}
