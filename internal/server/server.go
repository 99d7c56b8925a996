package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/example/currency-wars/internal/game"
)

// Message is the inbound envelope.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSOut is the outbound envelope.
type WSOut struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// writeWait bounds a single websocket write. Some notifications go out
// while a room's lock is held, so a stalled peer must fail fast instead
// of holding up the room.
var writeWait = 10 * time.Second

// client is one websocket connection. WriteJSON is not safe for
// concurrent use, so every send goes through the mutex.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// GameServer is the websocket boundary around the game engine. It owns
// the connection table and implements game.Notifier over it.
type GameServer struct {
	engine   *game.Engine
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[game.PlayerID]*client
}

// NewGameServer wires an engine to this transport. Extra engine options
// (seeded RNG, player limits) pass through.
func NewGameServer(rates game.RateSource, logger *slog.Logger, opts ...game.Option) *GameServer {
	gs := &GameServer{
		clients: make(map[game.PlayerID]*client),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	engineOpts := append([]game.Option{
		game.WithRateSource(rates),
		game.WithLogger(logger),
	}, opts...)
	gs.engine = game.NewEngine(gs, engineOpts...)
	return gs
}

// Engine exposes the underlying engine for debug handlers.
func (gs *GameServer) Engine() *game.Engine { return gs.engine }

// Notify implements game.Notifier. Unknown ids are dropped: the engine
// may still address a seat whose socket is gone.
func (gs *GameServer) Notify(id game.PlayerID, event string, payload any) {
	gs.mu.RLock()
	c := gs.clients[id]
	gs.mu.RUnlock()
	if c == nil {
		return
	}
	if err := c.send(WSOut{Type: event, Payload: payload}); err != nil {
		gs.logger.Debug("write failed", "player", id, "event", event, "error", err)
	}
}

// HandleWS upgrades the connection, assigns a transient connection id
// and begins reading player actions.
func (gs *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := gs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		gs.logger.Warn("upgrade failed", "error", err)
		return
	}
	id := game.PlayerID(uuid.NewString())
	c := &client{conn: conn}
	gs.mu.Lock()
	gs.clients[id] = c
	gs.mu.Unlock()
	gs.logger.Info("connected", "player", id)

	go gs.readLoop(id, c)
}

// HandleListRooms serves the debug room listing.
func (gs *GameServer) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gs.engine.RoomSummaries())
}

func (gs *GameServer) readLoop(id game.PlayerID, c *client) {
	defer func() {
		c.conn.Close()
		gs.mu.Lock()
		delete(gs.clients, id)
		gs.mu.Unlock()
		gs.engine.Disconnect(id)
		gs.logger.Info("disconnected", "player", id)
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		gs.dispatch(id, msg)
	}
}

// dispatch routes one inbound action. Engine errors become a single
// error notification on the originating connection; a stale room or
// connection reference inside the engine is a silent no-op.
func (gs *GameServer) dispatch(id game.PlayerID, msg Message) {
	var err error
	switch msg.Type {
	case "createRoom":
		var data struct {
			Name string `json:"name"`
		}
		json.Unmarshal(msg.Payload, &data)
		gs.engine.CreateRoom(id, data.Name)
	case "joinRoom":
		var data struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}
		json.Unmarshal(msg.Payload, &data)
		err = gs.engine.JoinRoom(data.Code, id, data.Name)
	case "refreshCards":
		gs.engine.RefreshCards(id)
	case "setReady":
		var data struct {
			Ready bool `json:"ready"`
		}
		json.Unmarshal(msg.Payload, &data)
		gs.engine.SetReady(id, data.Ready)
	case "startGame":
		err = gs.engine.StartGame(context.Background(), id)
	case "buySell":
		var req game.BuySellRequest
		json.Unmarshal(msg.Payload, &req)
		err = gs.engine.BuySell(id, req)
	case "playerTrade":
		var req game.TradeRequest
		json.Unmarshal(msg.Payload, &req)
		err = gs.engine.PlayerTrade(id, req)
	case "endTurn":
		err = gs.engine.EndTurn(id)
	default:
		gs.logger.Debug("unknown message type", "player", id, "type", msg.Type)
	}
	if err != nil {
		gs.Notify(id, game.MsgError, game.ErrorPayload{Message: err.Error()})
	}
}
