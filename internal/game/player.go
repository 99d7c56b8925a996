package game

// PlayerID is the transient connection handle assigned by the transport
// layer when a socket connects. It carries no identity beyond that.
type PlayerID string

// PortfolioPoint is one entry of a player's round-by-round portfolio
// value history, denominated in the domestic currency.
type PortfolioPoint struct {
	Round int     `json:"round"`
	Value float64 `json:"value"`
}

// Player is owned exclusively by its Room; all mutation happens under
// the room lock.
type Player struct {
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

func newPlayer(id PlayerID, name string, host bool, starting, goal Card) *Player {
	return &Player{
		ID:               id,
		Name:             name,
		IsHost:           host,
		StartingCard:     starting,
		GoalCard:         goal,
		Holdings:         newHoldings(starting),
		PortfolioHistory: []PortfolioPoint{},
	}
}

// resetCards replaces both cards and restores holdings to the new
// starting allocation. Only valid while the room is in lobby.
func (p *Player) resetCards(starting, goal Card) {
	p.StartingCard = starting
	p.GoalCard = goal
	p.Holdings = newHoldings(starting)
}
