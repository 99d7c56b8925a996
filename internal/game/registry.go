package game

import (
	"sort"
	"strings"
)

// Room codes use a 32-symbol alphabet with visually ambiguous glyphs
// (I, O, 0, 1) removed.
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 6
)

// generateRoomCode retries until the code is unused. Caller holds e.mu.
func (e *Engine) generateRoomCode() string {
	for {
		b := make([]byte, roomCodeLength)
		for i := range b {
			b[i] = roomCodeAlphabet[e.rng.Intn(len(roomCodeAlphabet))]
		}
		code := string(b)
		if _, taken := e.rooms[code]; !taken {
			return code
		}
	}
}

func (e *Engine) findRoom(code string) *Room {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rooms[code]
}

// roomByConn locates the room containing the given connection, or nil.
func (e *Engine) roomByConn(id PlayerID) *Room {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.rooms {
		r.mu.Lock()
		p := r.playerByID(id)
		r.mu.Unlock()
		if p != nil {
			return r
		}
	}
	return nil
}

// FindByConnection returns the room containing the given connection,
// or nil. Unknown connections are not an error: late messages from
// departed sockets are expected.
func (e *Engine) FindByConnection(id PlayerID) *Room {
	return e.roomByConn(id)
}

// CreateRoom allocates a room with a fresh code and registers the
// creator as host, with freshly dealt cards.
func (e *Engine) CreateRoom(creator PlayerID, name string) *Room {
	e.mu.Lock()
	code := e.generateRoomCode()
	room := newRoom(code, creator)
	starting, goal := e.cards.Deal()
	player := newPlayer(creator, name, true, starting, goal)
	room.Players = append(room.Players, player)
	e.rooms[code] = room
	e.mu.Unlock()

	e.logger.Info("room created", "room", code, "host", name)
	e.notifier.Notify(creator, MsgRoomCreated, RoomCreatedPayload{Code: code, Player: viewOf(player)})
	return room
}

// JoinRoom appends a new player to a lobby room.
func (e *Engine) JoinRoom(code string, id PlayerID, name string) error {
	room := e.findRoom(strings.ToUpper(code))
	if room == nil {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	if room.Status != StatusLobby {
		room.mu.Unlock()
		return ErrAlreadyStarted
	}
	if len(room.Players) >= e.maxPlayers {
		room.mu.Unlock()
		return ErrRoomFull
	}
	starting, goal := e.cards.Deal()
	player := newPlayer(id, name, false, starting, goal)
	room.Players = append(room.Players, player)
	roster := rosterViews(room)
	e.notifier.Notify(id, MsgJoinedRoom, JoinedRoomPayload{Code: room.Code, Player: viewOf(player), Players: roster})
	e.broadcast(room, MsgPlayerJoined, RosterPayload{Players: roster})
	room.mu.Unlock()

	e.logger.Info("player joined", "room", room.Code, "player", name)
	return nil
}

// RefreshCards redeals both cards and resets holdings. Permitted only
// in lobby; anything else is a silent no-op.
func (e *Engine) RefreshCards(id PlayerID) {
	room := e.roomByConn(id)
	if room == nil {
		return
	}

	room.mu.Lock()
	if room.Status != StatusLobby {
		room.mu.Unlock()
		return
	}
	player := room.playerByID(id)
	if player == nil {
		room.mu.Unlock()
		return
	}
	starting, goal := e.cards.Deal()
	player.resetCards(starting, goal)
	e.notifier.Notify(id, MsgCardsRefreshed, CardsRefreshedPayload{StartingCard: starting, GoalCard: goal})
	e.broadcast(room, MsgPlayerJoined, RosterPayload{Players: rosterViews(room)})
	room.mu.Unlock()
}

// SetReady toggles the lobby ready flag and pushes the roster.
func (e *Engine) SetReady(id PlayerID, ready bool) {
	room := e.roomByConn(id)
	if room == nil {
		return
	}

	room.mu.Lock()
	player := room.playerByID(id)
	if player != nil {
		player.Ready = ready
	}
	e.broadcast(room, MsgPlayerJoined, RosterPayload{Players: rosterViews(room)})
	room.mu.Unlock()
}

// Disconnect handles an implicit leave. In lobby the player is removed
// (pruning the room if it empties, transferring host otherwise); mid
// game the seat is only marked disconnected and the room keeps waiting
// for its input.
func (e *Engine) Disconnect(id PlayerID) {
	e.mu.Lock()
	var room *Room
	for _, r := range e.rooms {
		r.mu.Lock()
		p := r.playerByID(id)
		r.mu.Unlock()
		if p != nil {
			room = r
			break
		}
	}
	if room == nil {
		e.mu.Unlock()
		return
	}

	room.mu.Lock()
	player := room.playerByID(id)
	name := player.Name

	if room.Status == StatusLobby {
		players := room.Players[:0]
		for _, p := range room.Players {
			if p.ID != id {
				players = append(players, p)
			}
		}
		room.Players = players
		if len(room.Players) == 0 {
			delete(e.rooms, room.Code)
			room.mu.Unlock()
			e.mu.Unlock()
			e.logger.Info("room deleted", "room", room.Code)
			return
		}
		if room.HostID == id {
			room.HostID = room.Players[0].ID
			room.Players[0].IsHost = true
		}
		e.broadcast(room, MsgPlayerLeft, PlayerLeftPayload{Name: name, Players: rosterViews(room)})
		room.mu.Unlock()
		e.mu.Unlock()

		e.logger.Info("player left", "room", room.Code, "player", name)
		return
	}

	player.Disconnected = true
	e.broadcast(room, MsgPlayerDisconnected, PlayerDisconnectedPayload{Name: name})
	room.mu.Unlock()
	e.mu.Unlock()

	e.logger.Info("player disconnected mid-game", "room", room.Code, "player", name)
}

// RoomSummary is the debug listing entry served over REST.
type RoomSummary struct {
	Code        string     `json:"code"`
	Status      RoomStatus `json:"status"`
	PlayerCount int        `json:"playerCount"`
}

// RoomSummaries lists every live room, sorted by code.
func (e *Engine) RoomSummaries() []RoomSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]RoomSummary, 0, len(e.rooms))
	for _, r := range e.rooms {
		r.mu.Lock()
		out = append(out, RoomSummary{Code: r.Code, Status: r.Status, PlayerCount: len(r.Players)})
		r.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
