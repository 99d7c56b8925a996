package game

import "sync"

// RoomStatus is monotonic: lobby -> playing -> finished.
type RoomStatus string

const (
	StatusLobby    RoomStatus = "lobby"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

// RateChange records one committed rate mutation.
type RateChange struct {
	Currency Currency `json:"currency"`
	Old      float64  `json:"old"`
	New      float64  `json:"new"`
	Change   float64  `json:"change"`
}

// GameState exists only while the room is playing.
type GameState struct {
	Round              int
	Rates              map[Currency]float64
	RealRates          map[Currency]float64
	LastRateChanges    map[Currency]float64
	CurrentEvent       *Event
	CurrentPlayerIndex int
	RateChangeLog      []RateChange

	// pendingRateChanges is sampled when an event is drawn and withheld
	// from every projection until committed at the round boundary.
	pendingRateChanges map[Currency]float64
}

// Room is one isolated game session. All state behind the mutex; the
// engine locks it for the full duration of each inbound action.
type Room struct {
	Code    string
	HostID  PlayerID
	Players []*Player
	Game    *GameState
	Status  RoomStatus

	mu sync.Mutex
}

func newRoom(code string, hostID PlayerID) *Room {
	return &Room{
		Code:   code,
		HostID: hostID,
		Status: StatusLobby,
	}
}

func (r *Room) playerByID(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) currentPlayer() *Player {
	if r.Game == nil || len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.Game.CurrentPlayerIndex]
}

func (r *Room) activeCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.Finished {
			n++
		}
	}
	return n
}

// nextActiveIndex finds the next non-finished player cyclically after
// from. Callers guarantee at least one active player exists.
func (r *Room) nextActiveIndex(from int) int {
	next := (from + 1) % len(r.Players)
	for r.Players[next].Finished {
		next = (next + 1) % len(r.Players)
	}
	return next
}

// trackPortfolioHistory appends a value snapshot for every player still
// in the race, at the current committed rates.
func (r *Room) trackPortfolioHistory() {
	for _, p := range r.Players {
		if p.Finished {
			continue
		}
		p.PortfolioHistory = append(p.PortfolioHistory, PortfolioPoint{
			Round: r.Game.Round,
			Value: PortfolioValue(p.Holdings, r.Game.Rates),
		})
	}
}
