package game

// Notifier is the narrow capability the engine uses to push messages to
// players. The transport layer implements it; game-rule code never
// touches a socket. Notifications for ids the transport no longer knows
// are dropped silently.
type Notifier interface {
	Notify(id PlayerID, event string, payload any)
}

// Outbound event names.
const (
	MsgRoomCreated        = "roomCreated"
	MsgJoinedRoom         = "joinedRoom"
	MsgPlayerJoined       = "playerJoined"
	MsgPlayerLeft         = "playerLeft"
	MsgPlayerDisconnected = "playerDisconnected"
	MsgCardsRefreshed     = "cardsRefreshed"
	MsgGameStarted        = "gameStarted"
	MsgGameState          = "gameState"
	MsgRatesApplied       = "ratesApplied"
	MsgPlayerFinished     = "playerFinished"
	MsgGameOver           = "gameOver"
	MsgTransactionOk      = "transactionOk"
	MsgTradeOk            = "tradeOk"
	MsgError              = "error"
)

type RoomCreatedPayload struct {
	Code   string     `json:"code"`
	Player PlayerView `json:"player"`
}

type JoinedRoomPayload struct {
	Code    string       `json:"code"`
	Player  PlayerView   `json:"player"`
	Players []PlayerView `json:"players"`
}

// RosterPayload carries the full lobby roster; the original pushes it
// on every lobby mutation (join, ready toggle, card refresh).
type RosterPayload struct {
	Players []PlayerView `json:"players"`
}

type PlayerLeftPayload struct {
	Name    string       `json:"name"`
	Players []PlayerView `json:"players"`
}

type PlayerDisconnectedPayload struct {
	Name string `json:"name"`
}

type CardsRefreshedPayload struct {
	StartingCard Card `json:"startingCard"`
	GoalCard     Card `json:"goalCard"`
}

type RatesAppliedPayload struct {
	Event           *Event               `json:"event"`
	RateChangeLog   []RateChange         `json:"rateChangeLog"`
	Rates           map[Currency]float64 `json:"rates"`
	LastRateChanges map[Currency]float64 `json:"lastRateChanges"`
}

type PlayerFinishedPayload struct {
	PlayerName string `json:"playerName"`
	Rank       int    `json:"rank"`
}

type GameOverPayload struct {
	Ranking []PlayerView         `json:"ranking"`
	Rates   map[Currency]float64 `json:"rates"`
}

type TransactionOkPayload struct {
	Holdings map[Currency]float64 `json:"holdings"`
}

type TradeOkPayload struct {
	GiveCurrency    Currency `json:"giveCurrency"`
	GiveAmount      float64  `json:"giveAmount"`
	ReceiveCurrency Currency `json:"receiveCurrency"`
	ReceiveAmount   float64  `json:"receiveAmount"`
	PartnerName     string   `json:"partnerName"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// broadcast sends one event to every member of the room. Caller holds
// the room lock so the roster cannot shift mid-iteration.
func (e *Engine) broadcast(r *Room, event string, payload any) {
	for _, p := range r.Players {
		e.notifier.Notify(p.ID, event, payload)
	}
}
