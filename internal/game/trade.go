package game

import "fmt"

// BuySellRequest is a market transaction against the bank rates.
type BuySellRequest struct {
	Type            string   `json:"type"` // "buy" or "sell"
	TargetCurrency  Currency `json:"targetCurrency"`
	TargetAmount    float64  `json:"targetAmount"`
	PaymentCurrency Currency `json:"paymentCurrency"`
}

// TradeRequest is a barter between the current player and a partner.
type TradeRequest struct {
	TargetPlayerID  PlayerID `json:"targetPlayerId"`
	GiveCurrency    Currency `json:"giveCurrency"`
	GiveAmount      float64  `json:"giveAmount"`
	ReceiveCurrency Currency `json:"receiveCurrency"`
	ReceiveAmount   float64  `json:"receiveAmount"`
}

func validCurrency(c Currency) bool {
	_, ok := FallbackRates[c]
	return ok
}

// BuySell executes a market transaction for the current player, at most
// once per round. paymentAmount = targetAmount * rate[target] /
// rate[payment]. Validation completes before any balance moves; a
// successful transaction immediately evaluates the win condition.
func (e *Engine) BuySell(id PlayerID, req BuySellRequest) error {
	room := e.roomByConn(id)
	if room == nil {
		return nil
	}

	room.mu.Lock()
	if room.Status != StatusPlaying {
		room.mu.Unlock()
		return nil
	}
	gs := room.Game
	player := room.currentPlayer()

	if player.ID != id {
		room.mu.Unlock()
		return ErrNotYourTurn
	}
	if player.MadeTransaction {
		room.mu.Unlock()
		return ErrAlreadyTransacted
	}
	if !validCurrency(req.TargetCurrency) || !validCurrency(req.PaymentCurrency) {
		room.mu.Unlock()
		return ErrUnknownCurrency
	}
	if req.TargetCurrency == req.PaymentCurrency {
		room.mu.Unlock()
		return ErrSameCurrency
	}
	if req.TargetAmount <= 0 {
		room.mu.Unlock()
		return ErrInvalidAmount
	}

	paymentAmount := req.TargetAmount * gs.Rates[req.TargetCurrency] / gs.Rates[req.PaymentCurrency]

	switch req.Type {
	case "buy":
		if player.Holdings[req.PaymentCurrency] < paymentAmount {
			room.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrInsufficientBalance, req.PaymentCurrency)
		}
		player.Holdings[req.PaymentCurrency] -= paymentAmount
		player.Holdings[req.TargetCurrency] += req.TargetAmount
	case "sell":
		if player.Holdings[req.TargetCurrency] < req.TargetAmount {
			room.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrInsufficientBalance, req.TargetCurrency)
		}
		player.Holdings[req.TargetCurrency] -= req.TargetAmount
		player.Holdings[req.PaymentCurrency] += paymentAmount
	default:
		room.mu.Unlock()
		return fmt.Errorf("unknown transaction type %q", req.Type)
	}

	player.MadeTransaction = true
	e.checkWin(room, player)
	holdings := copyRates(player.Holdings)
	room.mu.Unlock()

	e.notifier.Notify(id, MsgTransactionOk, TransactionOkPayload{Holdings: holdings})
	e.broadcastGameState(room)
	return nil
}

// PlayerTrade executes a barter between the current player and a
// non-finished partner, at most once per round. Neither side may hand
// the other more than half of the receiver's own goal amount in the
// receiver's goal currency. The four balance updates apply atomically:
// every check precedes the first mutation.
func (e *Engine) PlayerTrade(id PlayerID, req TradeRequest) error {
	room := e.roomByConn(id)
	if room == nil {
		return nil
	}

	room.mu.Lock()
	if room.Status != StatusPlaying {
		room.mu.Unlock()
		return nil
	}
	player := room.currentPlayer()

	if player.ID != id {
		room.mu.Unlock()
		return ErrNotYourTurn
	}
	if player.MadeTrade {
		room.mu.Unlock()
		return ErrAlreadyTraded
	}
	if !validCurrency(req.GiveCurrency) || !validCurrency(req.ReceiveCurrency) {
		room.mu.Unlock()
		return ErrUnknownCurrency
	}
	if req.GiveAmount <= 0 || req.ReceiveAmount <= 0 {
		room.mu.Unlock()
		return ErrInvalidAmount
	}

	partner := room.playerByID(req.TargetPlayerID)
	if partner == nil || partner == player || partner.Finished {
		room.mu.Unlock()
		return ErrInvalidPartner
	}
	if player.Holdings[req.GiveCurrency] < req.GiveAmount {
		room.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInsufficientBalance, req.GiveCurrency)
	}
	if partner.Holdings[req.ReceiveCurrency] < req.ReceiveAmount {
		room.mu.Unlock()
		return fmt.Errorf("%w: %s has too little %s", ErrInsufficientBalance, partner.Name, req.ReceiveCurrency)
	}
	if req.GiveCurrency == partner.GoalCard.Currency && req.GiveAmount > partner.GoalCard.Amount/2 {
		room.mu.Unlock()
		return fmt.Errorf("%w: at most %g %s for %s", ErrGoalProtection, partner.GoalCard.Amount/2, req.GiveCurrency, partner.Name)
	}
	if req.ReceiveCurrency == player.GoalCard.Currency && req.ReceiveAmount > player.GoalCard.Amount/2 {
		room.mu.Unlock()
		return fmt.Errorf("%w: at most %g %s of your goal currency", ErrGoalProtection, player.GoalCard.Amount/2, req.ReceiveCurrency)
	}

	player.Holdings[req.GiveCurrency] -= req.GiveAmount
	player.Holdings[req.ReceiveCurrency] += req.ReceiveAmount
	partner.Holdings[req.ReceiveCurrency] -= req.ReceiveAmount
	partner.Holdings[req.GiveCurrency] += req.GiveAmount

	player.MadeTrade = true
	partnerName := partner.Name
	room.mu.Unlock()

	e.notifier.Notify(id, MsgTradeOk, TradeOkPayload{
		GiveCurrency:    req.GiveCurrency,
		GiveAmount:      req.GiveAmount,
		ReceiveCurrency: req.ReceiveCurrency,
		ReceiveAmount:   req.ReceiveAmount,
		PartnerName:     partnerName,
	})
	e.broadcastGameState(room)
	return nil
}
